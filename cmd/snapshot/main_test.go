package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboardusecase "watchlist_backend/internal/feature/dashboard/usecase"
	quoteentity "watchlist_backend/internal/feature/quotes/domain/entity"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

func TestWriteTable(t *testing.T) {
	t.Parallel()

	rows := []dashboardusecase.GroupOverview{
		{Group: entity.Group{Name: "記憶體"}, StockCount: 6, Aggregate: quoteentity.GroupAggregate{AveragePercent: null.FloatFrom(1.234), Succeeded: 5, Failed: 1}},
		{Group: entity.Group{Name: "面板"}, StockCount: 3, Aggregate: quoteentity.GroupAggregate{Failed: 3}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"GROUP", "STOCKS", "AVG", "%", "TREND", "OK", "FAILED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"記憶體", "6", "1.23", "up", "5", "1"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"面板", "3", "-", "none", "0", "3"}, strings.Fields(lines[2]))
}
