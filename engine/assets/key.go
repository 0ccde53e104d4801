package assets

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// StoreID uniquely identifies the storage backend a resource was loaded from.
// The backend defines what it means; this package only compares, hashes and
// orders it.
type StoreID uuid.UUID

var NilStoreID StoreID

// storeNamespace seeds name based store identifiers.
var storeNamespace = uuid.MustParse("6f3c2a1e-9b7d-4c55-8e0a-2d41f7b3a9c6")

func NewStoreID() StoreID {
	return StoreID(uuid.New())
}

// StoreIDFromName derives a stable identifier from a backend name, so the
// same backend gets the same id across runs.
func StoreIDFromName(name string) StoreID {
	return StoreID(uuid.NewSHA1(storeNamespace, []byte(name)))
}

// StoreIDsFromNames maps each configured backend name to its StoreID.
func StoreIDsFromNames(names []string) map[string]StoreID {
	ids := make(map[string]StoreID, len(names))
	for _, name := range names {
		ids[name] = StoreIDFromName(name)
	}
	return ids
}

func ParseStoreID(s string) (StoreID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilStoreID, err
	}
	return StoreID(id), nil
}

func (s StoreID) Compare(other StoreID) int {
	return bytes.Compare(s[:], other[:])
}

func (s StoreID) String() string {
	return uuid.UUID(s).String()
}

// ResourceKey identifies a loadable resource by the extension of the format it
// was provided in, its name and the store it was loaded from. Two keys are
// equal iff all three fields are equal, so a ResourceKey can be used directly
// as a map key.
type ResourceKey struct {
	extension string
	name      string
	store     StoreID
}

func NewResourceKey(name, extension string, store StoreID) ResourceKey {
	return ResourceKey{
		extension: extension,
		name:      name,
		store:     store,
	}
}

func (k ResourceKey) Extension() string { return k.extension }
func (k ResourceKey) Name() string      { return k.name }
func (k ResourceKey) Store() StoreID    { return k.store }

func (k ResourceKey) Equal(other ResourceKey) bool {
	return k == other
}

// Compare orders keys by extension, then name, then store.
func (k ResourceKey) Compare(other ResourceKey) int {
	if c := cmp.Compare(k.extension, other.extension); c != 0 {
		return c
	}
	if c := cmp.Compare(k.name, other.name); c != 0 {
		return c
	}
	return k.store.Compare(other.store)
}

// Hash is stable across processes. Fields are separated by a zero byte so
// ("ab", "c") and ("a", "bc") hash differently.
func (k ResourceKey) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(k.extension)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(k.name)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(k.store[:])
	return d.Sum64()
}

func (k ResourceKey) String() string {
	return fmt.Sprintf("%s.%s@%s", k.name, k.extension, k.store)
}

func SortKeys(keys []ResourceKey) {
	slices.SortFunc(keys, ResourceKey.Compare)
}
