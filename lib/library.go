package lib

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/blevesearch/bleve"
	"github.com/boltdb/bolt"
	"github.com/xuri/excelize/v2"
)

var (
	catalogBucket      = []byte("catalog")
	rotationsBucket    = []byte("rotations")
	associationsBucket = []byte("associations")
)

/*
CatalogPart is one entry of an imported supplier parts list.
*/
type CatalogPart struct {
	SupplierRef  string
	Category     string
	PartNumber   string
	Package      string
	Manufacturer string
	LibraryType  string
	Description  string
}

/*
Library is the local parts database: an imported supplier catalog,
per-footprint rotation overrides, and component-to-part
associations. Backed by bolt, with a bleve index for search.
*/
type Library struct {
	root  string
	db    *bolt.DB
	index bleve.Index
}

/*
Create or open a library under root.
*/
func NewLibrary(root string) (*Library, error) {
	db, err := bolt.Open(filepath.Join(root, "kfab.db"), 0644, nil)
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{catalogBucket, rotationsBucket, associationsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	ipath := filepath.Join(root, "kfab.index")
	var index bleve.Index
	if exists(ipath) {
		index, err = bleve.Open(ipath)
	} else {
		index, err = bleve.New(ipath, bleve.NewIndexMapping())
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Library{root: root, db: db, index: index}, nil
}

func (l *Library) Close() error {
	l.index.Close()

	return l.db.Close()
}

/*
ImportCatalog loads a supplier parts list from an xlsx price list
into the catalog bucket and the search index. Row layout follows
the published JLCPCB catalog:

LCSC Part  First Category  Second Category  MFR.Part  Package  Solder Joint  Manufacturer  Library Type  Description  ...
*/
func (l *Library) ImportCatalog(src string) (int, error) {
	f, err := excelize.OpenFile(src)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := f.Rows(f.GetSheetList()[0])
	if err != nil {
		return 0, err
	}

	count := 0
	batch := l.index.NewBatch()
	if err := l.db.Update(func(tx *bolt.Tx) error {
		catalog := tx.Bucket(catalogBucket)
		for rows.Next() {
			row, err := rows.Columns()
			if err != nil || len(row) < 9 {
				continue
			}
			if row[0] == "LCSC Part" {
				// header row
				continue
			}

			part := CatalogPart{
				SupplierRef:  row[0],
				Category:     row[1],
				PartNumber:   row[3],
				Package:      row[4],
				Manufacturer: row[6],
				LibraryType:  row[7],
				Description:  row[8],
			}

			data, err := marshal(part)
			if err != nil {
				return err
			}
			if err := catalog.Put([]byte(part.SupplierRef), data); err != nil {
				return err
			}
			if err := batch.Index(part.SupplierRef, part); err != nil {
				return err
			}

			count++
		}
		return nil
	}); err != nil {
		return 0, err
	}

	return count, l.index.Batch(batch)
}

/*
Search the imported catalog. Matches part numbers, manufacturers,
and descriptions.
*/
func (l *Library) Search(text string, limit int) ([]*CatalogPart, error) {
	request := bleve.NewSearchRequest(bleve.NewMatchQuery(text))
	if limit > 0 {
		request.Size = limit
	}

	result, err := l.index.Search(request)
	if err != nil {
		return nil, err
	}

	parts := []*CatalogPart{}
	err = l.db.View(func(tx *bolt.Tx) error {
		catalog := tx.Bucket(catalogBucket)
		for _, hit := range result.Hits {
			data := catalog.Get([]byte(hit.ID))
			if data == nil {
				continue
			}

			part := CatalogPart{}
			if err := unmarshal(data, &part); err != nil {
				return err
			}

			parts = append(parts, &part)
		}
		return nil
	})

	return parts, err
}

/*
Part looks up a catalog entry by supplier reference.
*/
func (l *Library) Part(supplierRef string) (*CatalogPart, bool) {
	part := CatalogPart{}
	found := false
	l.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(catalogBucket).Get([]byte(supplierRef))
		if data == nil {
			return nil
		}
		if err := unmarshal(data, &part); err != nil {
			return err
		}

		found = true
		return nil
	})

	return &part, found
}

/*
SetRotation stores a rotation offset, in degrees, for a footprint.
Offsets correct for disagreements between the pcb tool's zero
orientation and the assembly vendor's.
*/
func (l *Library) SetRotation(footprint string, degrees float64) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(rotationsBucket).Put(
			[]byte(footprint),
			[]byte(strconv.FormatFloat(degrees, 'f', -1, 64)),
		)
	})
}

/*
Rotations returns every stored per-footprint rotation offset.
*/
func (l *Library) Rotations() (map[string]float64, error) {
	rotations := map[string]float64{}
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(rotationsBucket).ForEach(func(k, v []byte) error {
			degrees, err := strconv.ParseFloat(string(v), 64)
			if err != nil {
				return fmt.Errorf("corrupt rotation for %s: %w", k, err)
			}

			rotations[string(k)] = degrees
			return nil
		})
	})

	return rotations, err
}

/*
Associate remembers the supplier reference for a component
value/footprint pair, so later runs fill it in automatically.
*/
func (l *Library) Associate(value, footprint, supplierRef string) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(associationsBucket).Put(
			associationKey(value, footprint), []byte(supplierRef),
		)
	})
}

/*
Association returns the stored supplier reference for a
value/footprint pair, if any.
*/
func (l *Library) Association(value, footprint string) (string, bool) {
	ref := ""
	l.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(associationsBucket).Get(associationKey(value, footprint)); v != nil {
			ref = string(v)
		}
		return nil
	})

	return ref, ref != ""
}

func associationKey(value, footprint string) []byte {
	key, _ := marshal([]string{value, footprint})

	return key
}

func exists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}

	return true
}

/*
return an encoded object as bytes
*/
func marshal(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := gob.NewEncoder(b).Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

/*
return a decoded object from bytes
*/
func unmarshal(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(v)
}
