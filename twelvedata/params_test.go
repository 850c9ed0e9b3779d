package twelvedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
		set   bool
	}{
		{name: "string", value: String("AAPL"), want: "AAPL", set: true},
		{name: "empty string is absent", value: String(""), want: "", set: false},
		{name: "int", value: Int(30), want: "30", set: true},
		{name: "zero int is present", value: Int(0), want: "0", set: true},
		{name: "float", value: Float(1.5), want: "1.5", set: true},
		{name: "bool", value: Bool(false), want: "false", set: true},
		{name: "nil pointer", value: OptInt(nil), want: "", set: false},
		{name: "zero value", value: Value{}, want: "", set: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
			assert.Equal(t, tt.set, tt.value.IsSet())
		})
	}
}

func TestParams_LastWriteWins(t *testing.T) {
	p := NewParams()
	p.Set(ParamSymbol, String("AAPL"))
	p.Set(ParamSymbol, String("MSFT"))

	v, ok := p.Get(ParamSymbol)
	require.True(t, ok)
	assert.Equal(t, "MSFT", v.String())
}

func TestParams_AbsentIsNoop(t *testing.T) {
	p := NewParams()
	p.Set(ParamDP, Int(2))

	p.Set(ParamDP, Value{})
	p.Set(ParamDP, OptInt(nil))
	p.SetString(ParamSymbol, "")

	v, ok := p.Get(ParamDP)
	require.True(t, ok)
	assert.Equal(t, "2", v.String())
	_, ok = p.Get(ParamSymbol)
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	library := DefaultDefaults().Params()
	caller := Params{ParamOutputSize: Int(100), ParamTimezone: String("UTC")}

	merged := Merge(library, caller, "secret")

	assert.Equal(t, "100", merged[ParamOutputSize].String())
	assert.Equal(t, "UTC", merged[ParamTimezone].String())
	assert.Equal(t, "desc", merged[ParamOrder].String())
	assert.Equal(t, "5", merged[ParamDP].String())
	assert.Equal(t, "secret", merged[ParamAPIKey].String())

	// inputs untouched
	assert.Equal(t, "30", library[ParamOutputSize].String())
	_, ok := caller[ParamAPIKey]
	assert.False(t, ok)
}

func TestParams_EncodeIsSorted(t *testing.T) {
	p := Params{
		ParamSymbol:     String("AAPL"),
		ParamAPIKey:     String("k"),
		ParamOutputSize: Int(5),
	}

	assert.Equal(t, "apikey=k&outputsize=5&symbol=AAPL", p.Encode())
	assert.Equal(t, []Param{ParamAPIKey, ParamOutputSize, ParamSymbol}, p.Keys())
}

func TestParams_Clone(t *testing.T) {
	p := Params{ParamSymbol: String("AAPL")}
	c := p.Clone()
	c.Set(ParamSymbol, String("MSFT"))

	assert.Equal(t, "AAPL", p[ParamSymbol].String())

	var nilParams Params
	assert.NotNil(t, nilParams.Clone())
}

func TestParamsFromMap(t *testing.T) {
	p := ParamsFromMap(map[string]string{"dp": "2", "exchange": ""})

	assert.Equal(t, "2", p[ParamDP].String())
	_, ok := p[ParamExchange]
	assert.False(t, ok)
}
