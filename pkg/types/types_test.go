package types

import (
	"testing"

	"github.com/kianmeng/ogma/pkg/tt"
)

var (
	pointType = MakeRecord("Point", []Field{{"x", Num}, {"y", Num}})
	rangeTy   = MakeTable([]Field{{"i", Num}})
)

func TestString(t *testing.T) {
	tt.Test(t, tt.Fn("String", (*Type).String), tt.Table{
		tt.Args(Num).Rets("Num"),
		tt.Args(Str).Rets("Str"),
		tt.Args(Bool).Rets("Bool"),
		tt.Args(Nil).Rets("Nil"),
		tt.Args(AnyTable).Rets("Table"),
		tt.Args(AnyTableRow).Rets("TableRow"),
		tt.Args(rangeTy).Rets("Table<i:Num>"),
		tt.Args(RowOf(rangeTy)).Rets("TableRow<i:Num>"),
		tt.Args(pointType).Rets("Point"),
	})
}

func TestEqual(t *testing.T) {
	tt.Test(t, tt.Fn("Equal", Equal), tt.Table{
		tt.Args(Num, Num).Rets(true),
		tt.Args(Num, Str).Rets(false),
		tt.Args((*Type)(nil), Num).Rets(false),
		tt.Args((*Type)(nil), (*Type)(nil)).Rets(true),
		tt.Args(rangeTy, MakeTable([]Field{{"i", Num}})).Rets(true),
		tt.Args(rangeTy, MakeTable([]Field{{"j", Num}})).Rets(false),
		tt.Args(rangeTy, AnyTable).Rets(false),
		tt.Args(pointType, MakeRecord("Point", []Field{{"x", Num}, {"y", Num}})).Rets(true),
		tt.Args(pointType, MakeRecord("Pt", []Field{{"x", Num}, {"y", Num}})).Rets(false),
		tt.Args(pointType, MakeRecord("Point", []Field{{"x", Num}})).Rets(false),
	})
}

func TestAccepts(t *testing.T) {
	tt.Test(t, tt.Fn("Accepts", Accepts), tt.Table{
		tt.Args((*Type)(nil), Num).Rets(true),
		tt.Args((*Type)(nil), rangeTy).Rets(true),
		tt.Args(AnyTable, rangeTy).Rets(true),
		tt.Args(AnyTable, Num).Rets(false),
		tt.Args(AnyTableRow, RowOf(rangeTy)).Rets(true),
		tt.Args(Num, Num).Rets(true),
		tt.Args(Num, Bool).Rets(false),
		tt.Args(rangeTy, MakeTable([]Field{{"i", Num}})).Rets(true),
		tt.Args(rangeTy, MakeTable([]Field{{"i", Str}})).Rets(false),
	})
}

func TestFieldAndWithColumn(t *testing.T) {
	ty, idx := pointType.Field("y")
	if !Equal(ty, Num) || idx != 1 {
		t.Errorf("Field(y) = (%v, %d), want (Num, 1)", ty, idx)
	}
	ty, idx = pointType.Field("z")
	if ty != nil || idx != -1 {
		t.Errorf("Field(z) = (%v, %d), want (nil, -1)", ty, idx)
	}

	grown := WithColumn(rangeTy, "sq", Num)
	want := MakeTable([]Field{{"i", Num}, {"sq", Num}})
	if !Equal(grown, want) {
		t.Errorf("WithColumn = %v, want %v", grown, want)
	}
	// The receiver is not mutated.
	if !Equal(rangeTy, MakeTable([]Field{{"i", Num}})) {
		t.Errorf("WithColumn mutated its receiver: %v", rangeTy)
	}
}
