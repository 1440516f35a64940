package utils

import (
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-rewards-api/internal/constants"
)

func TestISOWeek(t *testing.T) {
	cases := []struct {
		date     string
		wantYear int
		wantWeek int
	}{
		{"2024-03-15", 2024, 11},
		{"2021-01-03", 2020, 53},
		{"2024-12-30", 2025, 1},
		{"2024-01-01", 2024, 1},
	}

	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			d, err := ParseDate(tc.date)
			require.NoError(t, err)

			year, week := ISOWeek(d)
			assert.Equal(t, tc.wantYear, year)
			assert.Equal(t, tc.wantWeek, week)
		})
	}
}

func TestDateOnly_DropsClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	in := time.Date(2024, 3, 15, 23, 30, 0, 0, loc)

	got := DateOnly(in)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestGenerateAssetName(t *testing.T) {
	name := GenerateAssetName(`C:\uploads\My Card!.PNG`)
	assert.Regexp(t, regexp.MustCompile(`^my-card-[0-9a-f]{8}\.png$`), name)

	other := GenerateAssetName("My Card!.PNG")
	assert.NotEqual(t, name, other)

	assert.Regexp(t, regexp.MustCompile(`^card-[0-9a-f]{8}\.jpg$`), GenerateAssetName("!!!.jpg"))
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/tasks?page=3&limit=10", nil)

	params := GetPaginationParams(c)
	assert.Equal(t, PaginationParams{Page: 3, Limit: 10, Offset: 20}, params)

	params = NewPaginationParams(0, constants.MaxPageSize+1)
	assert.Equal(t, PaginationParams{Page: 1, Limit: constants.DefaultPageSize, Offset: 0}, params)
}
