package twelvedata

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvFixture = "datetime;open;high;low;close;volume\n" +
	"2021-09-16 15:59:00;148.73500;148.86000;148.73000;148.85001;624277\n"

func TestCSVRowLayout(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(csvFixture), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], ";")
	assert.Len(t, fields, 6)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}( \d{2}:\d{2}:\d{2})?$`), fields[0])
}

func TestParseCSV(t *testing.T) {
	bars, err := ParseCSV(csvFixture, 0)
	require.NoError(t, err)
	require.Len(t, bars, 1)

	assert.Equal(t, Bar{
		Datetime: "2021-09-16 15:59:00",
		Open:     "148.73500",
		High:     "148.86000",
		Low:      "148.73000",
		Close:    "148.85001",
		Volume:   "624277",
	}, bars[0])
}

func TestParseCSV_Variants(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		delimiter rune
		want      int
		wantErr   bool
	}{
		{name: "no header", body: "2021-09-16;1;2;0.5;1.5;10\n2021-09-15;1;2;0.5;1.5;10\n", want: 2},
		{name: "comma delimiter", body: "datetime,open,high,low,close,volume\n2021-09-16,1,2,0.5,1.5,10\n", delimiter: ',', want: 1},
		{name: "reordered header", body: "datetime;close;open;high;low;volume\n2021-09-16;1.5;1;2;0.5;10\n", want: 1},
		{name: "empty body", body: "", want: 0},
		{name: "short row", body: "2021-09-16;1;2\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars, err := ParseCSV(tt.body, tt.delimiter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, bars, tt.want)
			for _, b := range bars {
				assert.Equal(t, Number("1.5"), b.Close)
			}
		})
	}
}
