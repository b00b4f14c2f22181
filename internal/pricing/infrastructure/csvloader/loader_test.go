package csvloader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDividendSchedule(t *testing.T) {
	csv := "ex_date,amount\n0.75,1.50\n0.25,2.00\n"

	schedule, err := LoadDividendSchedule(strings.NewReader(csv))
	require.NoError(t, err)

	require.Equal(t, 2, schedule.Len())
	// 按除息日升序
	dividends := schedule.Dividends()
	assert.Equal(t, 0.25, dividends[0].ExDate)
	assert.Equal(t, 2.00, dividends[0].Amount)
	assert.Equal(t, 0.75, dividends[1].ExDate)
}

func TestLoadDividendScheduleEmpty(t *testing.T) {
	schedule, err := LoadDividendSchedule(strings.NewReader("ex_date,amount\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, schedule.Len())
}

func TestLoadDividendScheduleRejectsNegativeExDate(t *testing.T) {
	_, err := LoadDividendSchedule(strings.NewReader("ex_date,amount\n-0.5,1.0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ex_date")
}

func TestLoadDividendScheduleRejectsNonPositiveAmount(t *testing.T) {
	_, err := LoadDividendSchedule(strings.NewReader("ex_date,amount\n0.5,0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestLoadDividendScheduleMalformed(t *testing.T) {
	_, err := LoadDividendSchedule(strings.NewReader("ex_date,amount\n0.5,not-a-number\n"))
	require.Error(t, err)
}
