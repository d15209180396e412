package vals

import (
	"testing"

	"github.com/kianmeng/ogma/pkg/tt"
	"github.com/kianmeng/ogma/pkg/types"
)

func mustTable(cols ...Column) *Table {
	t, err := NewTable(cols)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	pointTy = types.MakeRecord("Point", []types.Field{
		{Name: "x", Type: types.Num}, {Name: "y", Type: types.Num}})
	point = NewStruct(pointTy, []Value{3.0, 4.0})

	numsTable = mustTable(
		MakeColumn("i", types.Num, []Value{0.0, 1.0, 2.0}),
		MakeColumn("name", types.Str, []Value{"a", "b", "c"}))
)

func TestTypeOf(t *testing.T) {
	tt.Test(t, tt.Fn("TypeOf", TypeOf), tt.Table{
		tt.Args(nil).Rets(types.Nil),
		tt.Args(1.5).Rets(types.Num),
		tt.Args("foo").Rets(types.Str),
		tt.Args(true).Rets(types.Bool),
		tt.Args(point).Rets(pointTy),
		tt.Args(numsTable).Rets(types.MakeTable([]types.Field{
			{Name: "i", Type: types.Num}, {Name: "name", Type: types.Str}})),
		tt.Args(numsTable.Row(1)).Rets(types.MakeTableRow([]types.Field{
			{Name: "i", Type: types.Num}, {Name: "name", Type: types.Str}})),
	})
}

func TestEqual(t *testing.T) {
	tt.Test(t, tt.Fn("Equal", Equal), tt.Table{
		tt.Args(nil, nil).Rets(true),
		tt.Args(1.0, 1.0).Rets(true),
		tt.Args(1.0, 2.0).Rets(false),
		tt.Args(1.0, "1").Rets(false),
		tt.Args("foo", "foo").Rets(true),
		tt.Args(true, false).Rets(false),
		tt.Args(point, NewStruct(pointTy, []Value{3.0, 4.0})).Rets(true),
		tt.Args(point, NewStruct(pointTy, []Value{3.0, 5.0})).Rets(false),
		tt.Args(numsTable, mustTable(
			MakeColumn("i", types.Num, []Value{0.0, 1.0, 2.0}),
			MakeColumn("name", types.Str, []Value{"a", "b", "c"}))).Rets(true),
		tt.Args(numsTable, mustTable(
			MakeColumn("i", types.Num, []Value{0.0, 1.0, 2.0}),
			MakeColumn("name", types.Str, []Value{"a", "b", "x"}))).Rets(false),
		tt.Args(numsTable.Row(0), numsTable.Row(0)).Rets(true),
		tt.Args(numsTable.Row(0), numsTable.Row(1)).Rets(false),
	})
}

func TestTable_WithColumn(t *testing.T) {
	derived, err := numsTable.WithColumn("sq", types.Num, []Value{0.0, 1.0, 4.0})
	if err != nil {
		t.Fatal(err)
	}
	if derived.NumCols() != 3 || derived.NumRows() != 3 {
		t.Errorf("got %d cols, %d rows, want 3, 3",
			derived.NumCols(), derived.NumRows())
	}
	if got := derived.Col(2).Cell(2); got != 4.0 {
		t.Errorf("new column cell = %v, want 4", got)
	}
	// The original table is unchanged.
	if numsTable.NumCols() != 2 {
		t.Errorf("original table has %d cols, want 2", numsTable.NumCols())
	}
	if _, err := numsTable.WithColumn("bad", types.Num, []Value{1.0}); err == nil {
		t.Errorf("short column accepted, want error")
	}
}

func TestTable_ColByName(t *testing.T) {
	c, i := numsTable.ColByName("name")
	if i != 1 || c.Name != "name" {
		t.Errorf("got column %q at %d, want name at 1", c.Name, i)
	}
	if _, i := numsTable.ColByName("missing"); i != -1 {
		t.Errorf("got position %d for missing column, want -1", i)
	}
}

func TestNewTable_RaggedColumns(t *testing.T) {
	_, err := NewTable([]Column{
		MakeColumn("a", types.Num, []Value{1.0, 2.0}),
		MakeColumn("b", types.Num, []Value{1.0}),
	})
	if err == nil {
		t.Errorf("ragged columns accepted, want error")
	}
}

func TestRepr(t *testing.T) {
	tt.Test(t, tt.Fn("Repr", Repr), tt.Table{
		tt.Args(nil).Rets(""),
		tt.Args(2.0).Rets("2"),
		tt.Args(2.5).Rets("2.5"),
		tt.Args("foo").Rets("foo"),
		tt.Args(true).Rets("true"),
		tt.Args(false).Rets("false"),
		tt.Args(point).Rets("Point {x:3 y:4}"),
		tt.Args(numsTable).Rets("i name\n0 a\n1 b\n2 c"),
		tt.Args(numsTable.Row(1)).Rets("i name\n1 b"),
		tt.Args(mustTable()).Rets("(empty table)"),
	})
}
