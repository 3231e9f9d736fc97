// Package seed decodes catalog documents: the embedded starter catalog and
// the JSON lines produced by bulk catalog exports.
package seed

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/indigo-rentals/db"
	"github.com/xenking/indigo-rentals/internal/domain/catalog"
)

// Catalog is a decoded catalog document.
type Catalog struct {
	Items       []catalog.Item
	Collections []catalog.Collection
	Lookbook    []catalog.LookbookItem
}

// Default decodes the embedded starter catalog.
func Default() (*Catalog, error) {
	return Parse(db.SeedCatalog)
}

// Parse decodes a catalog document of the form
// {"products": [...], "collections": [...], "lookbook": [...]}.
// Unknown keys are ignored.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{
		Items:       []catalog.Item{},
		Collections: []catalog.Collection{},
		Lookbook:    []catalog.LookbookItem{},
	}

	d := jx.DecodeBytes(data)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				it, err := DecodeItem(d)
				if err != nil {
					return err
				}
				c.Items = append(c.Items, it)
				return nil
			})
		case "collections":
			return d.Arr(func(d *jx.Decoder) error {
				col, err := decodeCollection(d)
				if err != nil {
					return err
				}
				c.Collections = append(c.Collections, col)
				return nil
			})
		case "lookbook":
			return d.Arr(func(d *jx.Decoder) error {
				l, err := decodeLookbookItem(d)
				if err != nil {
					return err
				}
				c.Lookbook = append(c.Lookbook, l)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return c, nil
}

// DecodeItem decodes a single product object and checks it is usable:
// it must have an ID, a known category and a non-negative price. Prices
// may be given as JSON strings or numbers.
func DecodeItem(d *jx.Decoder) (catalog.Item, error) {
	var (
		it    catalog.Item
		price string
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "id":
			it.ID, err = d.Str()
		case "name":
			it.Name, err = d.Str()
		case "description":
			it.Description, err = optStr(d)
		case "price":
			price, err = decodeAmount(d)
		case "category":
			var s string
			s, err = d.Str()
			it.Category = catalog.Category(s)
		case "imageUrl":
			it.ImageURL, err = d.Str()
		case "styleNotes":
			it.StyleNotes, err = optStr(d)
		case "vibe", "vibes":
			it.Vibes, err = strs(d)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return catalog.Item{}, errors.Wrap(err, "decode product")
	}

	if it.ID == "" {
		return catalog.Item{}, errors.New("product id is required")
	}
	if !it.Category.Valid() {
		return catalog.Item{}, errors.Errorf("product %s: unknown category %q", it.ID, it.Category)
	}
	it.Price, err = decimal.NewFromString(price)
	if err != nil {
		return catalog.Item{}, errors.Wrapf(err, "product %s: parse price %q", it.ID, price)
	}
	if it.Price.IsNegative() {
		return catalog.Item{}, errors.Errorf("product %s: negative price %s", it.ID, it.Price)
	}
	if it.Vibes == nil {
		it.Vibes = []string{}
	}
	return it, nil
}

func decodeCollection(d *jx.Decoder) (catalog.Collection, error) {
	c := catalog.Collection{IsSeasonalLookbook: true}
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "id":
			c.ID, err = d.Str()
		case "name":
			c.Name, err = d.Str()
		case "description":
			c.Description, err = optStr(d)
		case "imageUrl":
			c.ImageURL, err = d.Str()
		case "products":
			c.ItemIDs, err = strs(d)
		case "vibe":
			c.Vibe, err = d.Str()
		case "isSeasonalLookbook":
			c.IsSeasonalLookbook, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return catalog.Collection{}, errors.Wrap(err, "decode collection")
	}
	if c.ID == "" {
		return catalog.Collection{}, errors.New("collection id is required")
	}
	if c.ItemIDs == nil {
		c.ItemIDs = []string{}
	}
	return c, nil
}

func decodeLookbookItem(d *jx.Decoder) (catalog.LookbookItem, error) {
	var l catalog.LookbookItem
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "id":
			l.ID, err = d.Str()
		case "title":
			l.Title, err = d.Str()
		case "imageUrl":
			l.ImageURL, err = d.Str()
		case "category":
			l.Category, err = d.Str()
		case "products":
			l.ItemIDs, err = strs(d)
		case "description":
			l.Description, err = optStr(d)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return catalog.LookbookItem{}, errors.Wrap(err, "decode lookbook item")
	}
	if l.ID == "" {
		return catalog.LookbookItem{}, errors.New("lookbook item id is required")
	}
	if l.ItemIDs == nil {
		l.ItemIDs = []string{}
	}
	return l, nil
}

func decodeAmount(d *jx.Decoder) (string, error) {
	switch d.Next() {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		return "", errors.Errorf("unexpected %s for amount", d.Next())
	}
}

// optStr reads a string that may be null.
func optStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}

func strs(d *jx.Decoder) ([]string, error) {
	out := []string{}
	if d.Next() == jx.Null {
		return out, d.Null()
	}
	err := d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}
