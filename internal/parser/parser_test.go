package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/circegen/internal/ir"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		record     string
		typeParams []ir.TypeParam
		fields     []ir.Field
	}{
		{
			name:   "single field",
			input:  "case class Person(age: Int)",
			record: "Person",
			fields: []ir.Field{{Name: "age", Type: "Int"}},
		},
		{
			name:   "two fields",
			input:  "case class Something(number: Int, whatever: String)",
			record: "Something",
			fields: []ir.Field{
				{Name: "number", Type: "Int"},
				{Name: "whatever", Type: "String"},
			},
		},
		{
			name: "multi-line",
			input: `case class Person(
                age: Int,
                favoriteFood: Food
            )`,
			record: "Person",
			fields: []ir.Field{
				{Name: "age", Type: "Int"},
				{Name: "favoriteFood", Type: "Food"},
			},
		},
		{
			name:   "generic field type",
			input:  "case class Person(age: Int, favoriteFoods: List[Food])",
			record: "Person",
			fields: []ir.Field{
				{Name: "age", Type: "Int"},
				{Name: "favoriteFoods", Type: "List[Food]"},
			},
		},
		{
			name:   "nested brackets do not split",
			input:  "case class Nested(items: List[Pair[Int, String]])",
			record: "Nested",
			fields: []ir.Field{{Name: "items", Type: "List[Pair[Int, String]]"}},
		},
		{
			name:   "function and tuple types",
			input:  "case class F(f: Int => String, g: (Int, Int) => Int, m: Map[String, (Int, Long)])",
			record: "F",
			fields: []ir.Field{
				{Name: "f", Type: "Int => String"},
				{Name: "g", Type: "(Int, Int) => Int"},
				{Name: "m", Type: "Map[String, (Int, Long)]"},
			},
		},
		{
			name:   "empty",
			input:  "case class Empty()",
			record: "Empty",
			fields: []ir.Field{},
		},
		{
			name:   "empty with whitespace",
			input:  "case class Empty(   )",
			record: "Empty",
			fields: []ir.Field{},
		},
		{
			name:       "type parameter",
			input:      "case class Generic[A](something: List[A])",
			record:     "Generic",
			typeParams: []ir.TypeParam{{Name: "A"}},
			fields:     []ir.Field{{Name: "something", Type: "List[A]"}},
		},
		{
			name:       "upper bound",
			input:      "case class Generic[A <: B](something: List[A])",
			record:     "Generic",
			typeParams: []ir.TypeParam{{Name: "A", Bounds: "<: B"}},
			fields:     []ir.Field{{Name: "something", Type: "List[A]"}},
		},
		{
			name:       "context bound",
			input:      "case class Generic[A: Something](something: List[A])",
			record:     "Generic",
			typeParams: []ir.TypeParam{{Name: "A", Bounds: ": Something"}},
			fields:     []ir.Field{{Name: "something", Type: "List[A]"}},
		},
		{
			name:       "variance and context bound",
			input:      "case class Generic[+A: Something](something: List[A])",
			record:     "Generic",
			typeParams: []ir.TypeParam{{Name: "A", Variance: "+", Bounds: ": Something"}},
			fields:     []ir.Field{{Name: "something", Type: "List[A]"}},
		},
		{
			name:   "several type parameters",
			input:  "case class Pair[-A, B <: Map[K, V], F[_]](a: A, b: B)",
			record: "Pair",
			typeParams: []ir.TypeParam{
				{Name: "A", Variance: "-"},
				{Name: "B", Bounds: "<: Map[K, V]"},
				{Name: "F", Bounds: "[_]"},
			},
			fields: []ir.Field{{Name: "a", Type: "A"}, {Name: "b", Type: "B"}},
		},
		{
			name:   "default values",
			input:  `case class D(a: Int = 5, b: String = "x, y", c: Boolean = 1 <= 2)`,
			record: "D",
			fields: []ir.Field{
				{Name: "a", Type: "Int", Default: "5"},
				{Name: "b", Type: "String", Default: `"x, y"`},
				{Name: "c", Type: "Boolean", Default: "1 <= 2"},
			},
		},
		{
			name:   "char literal default",
			input:  "case class C(sep: Char = ',', close: Char = ')')",
			record: "C",
			fields: []ir.Field{
				{Name: "sep", Type: "Char", Default: "','"},
				{Name: "close", Type: "Char", Default: "')'"},
			},
		},
		{
			name:   "modifiers",
			input:  "case class M(val a: Int, private var b: Int, override val c: Int)",
			record: "M",
			fields: []ir.Field{
				{Name: "a", Type: "Int"},
				{Name: "b", Type: "Int"},
				{Name: "c", Type: "Int"},
			},
		},
		{
			name:   "annotations",
			input:  `case class J(@JsonKey("x:y, z") name: String, @transient count: Int)`,
			record: "J",
			fields: []ir.Field{
				{Name: "name", Type: "String"},
				{Name: "count", Type: "Int"},
			},
		},
		{
			name:   "backquoted name",
			input:  "case class K(`type`: String, `my field`: Int)",
			record: "K",
			fields: []ir.Field{
				{Name: "`type`", Type: "String"},
				{Name: "`my field`", Type: "Int"},
			},
		},
		{
			name:   "trailing comma",
			input:  "case class T(\n  a: Int,\n  b: Int,\n)",
			record: "T",
			fields: []ir.Field{{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}},
		},
		{
			name:   "extends clause ignored",
			input:  "final case class E(a: Int) extends Base(a) with Serializable",
			record: "E",
			fields: []ir.Field{{Name: "a", Type: "Int"}},
		},
		{
			name:   "windows line endings",
			input:  "case class W(\r\n  a: Int,\r\n  b: Int\r\n)\r\n",
			record: "W",
			fields: []ir.Field{{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}},
		},
		{
			name:   "duplicate names are kept",
			input:  "case class Dup(a: Int, a: String)",
			record: "Dup",
			fields: []ir.Field{{Name: "a", Type: "Int"}, {Name: "a", Type: "String"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(tt.input)
			require.NoError(t, err)
			require.NotNil(t, rec)

			assert.Equal(t, tt.record, rec.Name)
			assert.Equal(t, tt.typeParams, rec.TypeParams)
			assert.Equal(t, tt.fields, rec.Fields)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"missing colon", "case class Broken(number: Int, whatever String)", "has no ':'"},
		{"missing close paren", "case class Unbalanced(a: Int", "missing ')'"},
		{"extra close paren", "case class Extra(a: Int))", "unexpected ')'"},
		{"mismatched bracket", "case class Mismatch(a: List[Int)", "mismatched"},
		{"unclosed bracket", "case class Open(a: List[Int, b: Int)", "mismatched"},
		{"no parameter list", "case class Foo", "no parameter list"},
		{"empty input", "", "no parameter list"},
		{"empty name after keyword", "case class (a: Int)", "record name is empty"},
		{"no name at all", "(a: Int)", "record name is empty"},
		{"name not identifier", "case class 1Foo(a: Int)", "not an identifier"},
		{"qualified name", "case class a.Foo(a: Int)", "not an identifier"},
		{"empty field between commas", "case class A(a: Int,, b: Int)", "empty field"},
		{"only a comma", "case class A(,)", "empty field"},
		{"empty field name", "case class A(: Int)", "empty field name"},
		{"field name with spaces", "case class A(my field: Int)", "not an identifier"},
		{"missing type", "case class A(a: )", "has no type"},
		{"empty default", "case class A(a: Int = )", "empty default"},
		{"unterminated string", `case class A(a: String = "x)`, "unterminated string"},
		{"second parameter list", "case class A(a: Int)(implicit b: B)", "multiple parameter lists"},
		{"empty type parameter", "case class A[](a: Int)", "empty type parameter"},
		{"nameless type parameter", "case class A[<: B](a: Int)", "has no name"},
		{"stray bracket before list", "case class A](a: Int)", "unexpected ']'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, rec)

			assert.True(t, errors.Is(err, ErrMalformedInput))

			var mErr *MalformedInputError
			require.True(t, errors.As(err, &mErr))
			assert.Contains(t, mErr.Reason, tt.reason)
			assert.Contains(t, err.Error(), "malformed input")
		})
	}
}

func TestParseErrorOffset(t *testing.T) {
	_, err := Parse("case class Broken(number: Int, whatever String)")
	require.Error(t, err)

	var mErr *MalformedInputError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, 30, mErr.Offset)
	assert.Equal(t, "case class Broken(number: Int, whatever String)", mErr.Input)
	assert.Contains(t, err.Error(), "offset 30")
}

func TestParseErrorWithoutOffset(t *testing.T) {
	_, err := Parse("nothing to see")
	require.Error(t, err)

	var mErr *MalformedInputError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, -1, mErr.Offset)
	assert.Equal(t, "malformed input: no parameter list found", err.Error())
}

func TestParseIgnoresLineLayout(t *testing.T) {
	single, err := Parse("case class Person(age: Int, favoriteFood: Food)")
	require.NoError(t, err)

	multi, err := Parse("case class Person(\n  age: Int,\n  favoriteFood: Food\n)")
	require.NoError(t, err)

	assert.Equal(t, single, multi)
}

func TestDeclarationRoundTrip(t *testing.T) {
	inputs := []string{
		"case class Something(number: Int, whatever: String)",
		"case class Empty()",
		"case class Nested(items: List[Pair[Int, String]])",
		"case class Generic[+A: Something, B <: C, F[_]](something: List[A], f: F[B])",
		`case class D(a: Int = 5, b: String = "x, y")`,
		"case class K(`type`: String)",
		"final case class  Spaced (\n a : Int ,\n b:String\n)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			rec, err := Parse(input)
			require.NoError(t, err)

			again, err := Parse(Declaration(rec))
			require.NoError(t, err)
			assert.Equal(t, rec, again)
		})
	}
}

func TestDeclaration(t *testing.T) {
	rec := &ir.Record{
		Name:       "Generic",
		TypeParams: []ir.TypeParam{{Name: "A", Variance: "+", Bounds: ": Ordering"}, {Name: "B", Bounds: "<: A"}},
		Fields: []ir.Field{
			{Name: "a", Type: "A"},
			{Name: "bs", Type: "List[B]", Default: "Nil"},
		},
	}

	assert.Equal(t,
		"case class Generic[+A: Ordering, B <: A](a: A, bs: List[B] = Nil)",
		Declaration(rec))
	assert.Equal(t, "case class Empty()", Declaration(&ir.Record{Name: "Empty"}))
}
