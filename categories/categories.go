// Package categories - the closed catalog of detectable region classes.
package categories

import "fmt"

// ID identifies one region class. Its integer value is the class index into
// the score vector emitted by the detection network, so the set is fixed by
// the trained model and never extended at runtime.
type ID int

// Region classes recognized by the network. Indices 10-13 are reserved by the
// trained model and intentionally absent.
const (
	Arms   ID = 0
	Body   ID = 1
	Chest  ID = 2
	Eyes   ID = 3
	Feet   ID = 4
	Hands  ID = 5
	Head   ID = 6
	Legs   ID = 7
	Mouth  ID = 8
	Nose   ID = 9
	Person ID = 14
)

var names = map[ID]string{
	Arms:   "ARMS",
	Body:   "BODY",
	Chest:  "CHEST",
	Eyes:   "EYES",
	Feet:   "FEET",
	Hands:  "HANDS",
	Head:   "HEAD",
	Legs:   "LEGS",
	Mouth:  "MOUTH",
	Nose:   "NOSE",
	Person: "PERSON",
}

// String returns the catalog name for the ID.
func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("ID(%d)", int(id))
}

// Valid reports whether the ID belongs to the catalog.
func (id ID) Valid() bool {
	_, ok := names[id]
	return ok
}

// All returns every catalog ID in ascending index order.
func All() []ID {
	return []ID{Arms, Body, Chest, Eyes, Feet, Hands, Head, Legs, Mouth, Nose, Person}
}

// Parse returns the ID for a catalog name.
//
// Arguments:
//   - name: The catalog name, e.g. "HEAD".
//
// Returns:
//   - The matching ID, or an error if the name is not in the catalog.
func Parse(name string) (ID, error) {
	for id, n := range names {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

// MaxIndex returns the largest class index referenced by ids, or -1 when ids
// is empty. Decoders use it to validate score vector length.
func MaxIndex(ids []ID) int {
	maxIdx := -1
	for _, id := range ids {
		if int(id) > maxIdx {
			maxIdx = int(id)
		}
	}
	return maxIdx
}
