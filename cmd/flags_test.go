package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/twelvedata/twelvedata"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		rendered string
		apiKey   string
		want     string
	}{
		{
			name:     "masks key",
			rendered: "https://api.twelvedata.com/price?apikey=secret&symbol=AAPL",
			apiKey:   "secret",
			want:     "https://api.twelvedata.com/price?apikey=***&symbol=AAPL",
		},
		{
			name:     "empty key leaves url",
			rendered: "https://api.twelvedata.com/price?symbol=AAPL",
			apiKey:   "",
			want:     "https://api.twelvedata.com/price?symbol=AAPL",
		},
		{
			name:     "key elsewhere untouched",
			rendered: "https://api.twelvedata.com/price?apikey=secret&symbol=secret",
			apiKey:   "secret",
			want:     "https://api.twelvedata.com/price?apikey=***&symbol=secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskAPIKey(tt.rendered, tt.apiKey))
		})
	}
}

func TestOutputFlags_Validate(t *testing.T) {
	tests := []struct {
		name    string
		flags   outputFlags
		wantErr bool
	}{
		{name: "none", flags: outputFlags{}},
		{name: "csv", flags: outputFlags{csv: true}},
		{name: "csv with where", flags: outputFlags{csv: true, where: "Close > Open"}},
		{name: "url with where", flags: outputFlags{url: true, where: "Close > Open"}},
		{name: "csv and json", flags: outputFlags{csv: true, json: true}, wantErr: true},
		{name: "json and url", flags: outputFlags{json: true, url: true}, wantErr: true},
		{name: "json with where", flags: outputFlags{json: true, where: "Close > Open"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.flags.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApplyRequestFlags_OnlyChanged(t *testing.T) {
	c, err := twelvedata.NewClient("test-key", zerolog.Nop())
	require.NoError(t, err)

	var f requestFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--exchange", "NASDAQ", "--dp", "2"}))

	req := applyRequestFlags(cmd, &f, c.TimeSeries("AAPL", "1h"))
	params := req.Params()

	assert.Equal(t, twelvedata.String("NASDAQ"), params[twelvedata.ParamExchange])
	assert.Equal(t, twelvedata.Int(2), params[twelvedata.ParamDP])
	assert.Equal(t, twelvedata.Int(30), params[twelvedata.ParamOutputSize])
	assert.Equal(t, twelvedata.Bool(false), params[twelvedata.ParamPrepost])
}
