package feature_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytracker/skytracker/internal/feature"
	"github.com/skytracker/skytracker/internal/seniverse"
)

const rankingBody = `{"results":[
	{"location":{"name":"Lhasa","path":"拉萨,拉萨,西藏,中国"},"aqi":"18"},
	{"location":{"name":"Haikou","path":"海口,海口,海南,中国"},"aqi":"21"},
	{"location":{"name":"Lijiang","path":"丽江,云南,中国"},"aqi":25}]}`

func TestAirQuality_Current(t *testing.T) {
	v, client := newFakeVendor(t, map[string]string{
		"/air/now.json": `{"results":[{"location":{"name":"北京"},"air":{"city":{
			"aqi":"57","pm25":"40","quality":"良","last_update":"2024-01-01T12:00:00+08:00"}}}]}`,
	})

	view, err := feature.NewAirQuality(client).Current(context.Background(), "beijing")
	require.NoError(t, err)

	assert.Equal(t, "city", v.lastQuery("scope"))
	assert.Equal(t, "北京", view["name"])
	assert.Equal(t, "57", view["aqi"])
	assert.Equal(t, "良", view["quality"])
	assert.Equal(t, feature.Placeholder, view["primary_pollutant"])
}

func TestAirQuality_RankingAndFilter(t *testing.T) {
	_, client := newFakeVendor(t, map[string]string{"/air/ranking.json": rankingBody})
	a := feature.NewAirQuality(client)

	_, err := a.FilterRanking("l")
	assert.ErrorIs(t, err, seniverse.ErrNoData, "nothing fetched yet")

	ranking, err := a.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 3)
	assert.Equal(t, feature.RankingEntry{Rank: 1, Name: "Lhasa", Path: "拉萨, 西藏, 中国", AQI: "18"}, ranking[0])
	assert.Equal(t, "25", ranking[2].AQI)

	filtered, err := a.FilterRanking("  LI ")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 3, filtered[0].Rank, "rank survives filtering")

	all, err := a.FilterRanking("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAirQuality_DailyPaging(t *testing.T) {
	ctx := context.Background()
	v, client := newFakeVendor(t, map[string]string{
		"/air/daily.json": `{"results":[{"daily":[
			{"date":"2024-01-01","aqi":"50","quality":"优"},
			{"date":"2024-01-02","aqi":"80","quality":"良"}]}]}`,
	})
	a := feature.NewAirQuality(client)

	page, err := a.Daily(ctx, "beijing")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", page.Item["date"])

	_, err = a.PrevDay()
	assert.ErrorIs(t, err, feature.ErrBoundary)

	page, err = a.NextDay()
	require.NoError(t, err)
	assert.Equal(t, "良", page.Item["quality"])

	v.set("/air/daily.json", http.StatusOK, `{"results":[{"daily":[]}]}`)
	_, err = a.Daily(ctx, "beijing")
	assert.ErrorIs(t, err, seniverse.ErrNoData)

	page, err = a.PrevDay()
	require.NoError(t, err, "previous list kept after a failed fetch")
	assert.Equal(t, "2024-01-01", page.Item["date"])
}

func TestAirQuality_Hourly(t *testing.T) {
	_, client := newFakeVendor(t, map[string]string{
		"/air/hourly.json": `{"results":[{"location":{"name":"北京"},"hourly":[
			{"time":"2024-01-01T13:00:00+08:00","aqi":"60"}]}]}`,
	})

	series, err := feature.NewAirQuality(client).Hourly(context.Background(), "beijing")
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, "60", series.Points[0]["aqi"])
	assert.Equal(t, feature.Placeholder, series.Points[0]["o3"])
}

func TestAirQuality_HourlyHistory(t *testing.T) {
	_, client := newFakeVendor(t, map[string]string{
		"/air/hourly_history.json": `{"results":[{"location":{"name":"北京"},"hourly_history":[
			{"city":{"aqi":"70","last_update":"2024-01-01T10:00:00+08:00"}},
			{"stations":[]},
			{"city":{"aqi":"75","last_update":"2024-01-01T11:00:00+08:00"}}]}]}`,
	})

	series, err := feature.NewAirQuality(client).HourlyHistory(context.Background(), "beijing")
	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	assert.Equal(t, "75", series.Points[1]["aqi"])
}
