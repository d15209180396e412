package vals

import "github.com/kianmeng/ogma/pkg/types"

// Struct is an instance of a user-declared record type. Structs are
// immutable.
type Struct struct {
	ty     *types.Type
	fields []Value
}

// NewStruct creates a struct of the given record type. The field values
// must be aligned with the type's field list; the caller is responsible
// for having checked their types.
func NewStruct(ty *types.Type, fields []Value) *Struct {
	return &Struct{ty, fields}
}

// Type returns the record type of the struct.
func (s *Struct) Type() *types.Type { return s.ty }

// Field returns the value of the i-th field.
func (s *Struct) Field(i int) Value { return s.fields[i] }
