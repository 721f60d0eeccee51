package store

import (
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// persistentDerivation is the GORM model backing GormStore. It mirrors
// original_source/keychains/utils.py's single-row `persistent_derivation`
// SQLite table: one nullable column per variant slot, always updated
// in-place, never appended to (spec.md §3's overwrite semantics).
type persistentDerivation struct {
	ID uint `gorm:"primaryKey"`

	PRG16 []byte `gorm:"column:prg16"`
	PRG24 []byte `gorm:"column:prg24"`
	PRG32 []byte `gorm:"column:prg32"`

	Shake128 []byte `gorm:"column:shake128"`
	Shake256 []byte `gorm:"column:shake256"`
	Ascon    []byte `gorm:"column:ascon"`

	HKDFSHA256  []byte `gorm:"column:hkdf_sha256"`
	HKDFSHA3256 []byte `gorm:"column:hkdf_sha3_256"`
	HKDFSHA512  []byte `gorm:"column:hkdf_sha512"`
	HKDFSHA3512 []byte `gorm:"column:hkdf_sha3_512"`
}

func (persistentDerivation) TableName() string { return "persistent_derivation" }

// rowID is the single row's fixed primary key: only one record ever exists,
// matching the reference's single-row table.
const rowID = 1

var slotColumns = map[string]string{
	"prg_16":        "prg16",
	"prg_24":        "prg24",
	"prg_32":        "prg32",
	"shake128":      "shake128",
	"shake256":      "shake256",
	"ascon":         "ascon",
	"hkdf_sha256":   "hkdf_sha256",
	"hkdf_sha3_256": "hkdf_sha3_256",
	"hkdf_sha512":   "hkdf_sha512",
	"hkdf_sha3_512": "hkdf_sha3_512",
}

// GormStore is a StateStore backed by GORM over SQLite, grounded on
// kgiusti-go-fdo-server's go.mod dependency on gorm.io/gorm and
// gorm.io/driver/sqlite (spec.md §9: "choose a back-end ... behind it").
type GormStore struct {
	mu sync.Mutex
	db *gorm.DB
}

// NewGormStore opens (creating if necessary) a SQLite database at path and
// migrates the single-row persistent_derivation table.
func NewGormStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&persistentDerivation{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	if err := db.FirstOrCreate(&persistentDerivation{}, persistentDerivation{ID: rowID}).Error; err != nil {
		return nil, fmt.Errorf("store: seed row: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Put overwrites the column for slot on the single row.
func (g *GormStore) Put(slot string, state []byte) error {
	column, ok := slotColumns[slot]
	if !ok {
		return fmt.Errorf("store: unknown slot %q", slot)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.db.Model(&persistentDerivation{}).
		Where("id = ?", rowID).
		Update(column, state).Error
}

// Get reads the column for slot from the single row.
func (g *GormStore) Get(slot string) ([]byte, error) {
	column, ok := slotColumns[slot]
	if !ok {
		return nil, fmt.Errorf("store: unknown slot %q", slot)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var row persistentDerivation
	if err := g.db.Select(column).Where("id = ?", rowID).First(&row).Error; err != nil {
		return nil, fmt.Errorf("store: get slot %q: %w", slot, err)
	}
	v := columnValue(&row, column)
	if v == nil {
		return nil, &ErrSlotNotFound{Slot: slot}
	}
	return v, nil
}

func columnValue(row *persistentDerivation, column string) []byte {
	switch column {
	case "prg16":
		return row.PRG16
	case "prg24":
		return row.PRG24
	case "prg32":
		return row.PRG32
	case "shake128":
		return row.Shake128
	case "shake256":
		return row.Shake256
	case "ascon":
		return row.Ascon
	case "hkdf_sha256":
		return row.HKDFSHA256
	case "hkdf_sha3_256":
		return row.HKDFSHA3256
	case "hkdf_sha512":
		return row.HKDFSHA512
	case "hkdf_sha3_512":
		return row.HKDFSHA3512
	default:
		return nil
	}
}
