package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/gaffer/internal/domain"
)

func validFile() File {
	return File{
		Season:   "2025/26",
		Gameweek: 3,
		Players: []domain.Player{
			{ID: 1, Name: "Saka", Team: "Arsenal", Position: domain.Midfielder, Price: 10.0},
			{ID: 2, Name: "Haaland", Team: "Man City", Position: domain.Forward, Price: 14.0},
		},
		Teams: []domain.Team{
			{ID: 1, Name: "Arsenal", ShortName: "ARS", Strength: 85},
			{ID: 2, Name: "Man City", ShortName: "MCI", Strength: 88},
		},
		Fixtures: map[string][]domain.Fixture{
			"Arsenal": {
				{Gameweek: 5, Opponent: "Chelsea", Difficulty: 4},
				{Gameweek: 3, Opponent: "Brentford", Difficulty: 2, Home: true},
				{Gameweek: 4, Opponent: "Everton", Difficulty: 2},
			},
		},
	}
}

func TestNew_IndexesCollections(t *testing.T) {
	ds, err := New(validFile())
	require.NoError(t, err)

	assert.Equal(t, "2025/26", ds.Season())
	assert.Equal(t, 3, ds.Gameweek())

	players := ds.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "Saka", players[0].Name)

	p, ok := ds.Player(2)
	require.True(t, ok)
	assert.Equal(t, "Haaland", p.Name)

	_, ok = ds.Player(99)
	assert.False(t, ok)

	team, ok := ds.TeamByName("Arsenal")
	require.True(t, ok)
	assert.Equal(t, 85.0, team.Strength)

	// Short names resolve to the same record
	short, ok := ds.TeamByName("ARS")
	require.True(t, ok)
	assert.Equal(t, "Arsenal", short.Name)

	_, ok = ds.TeamByName("Leeds")
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr string
	}{
		{
			name:    "no players",
			mutate:  func(f *File) { f.Players = nil },
			wantErr: "no players",
		},
		{
			name:    "non-positive player id",
			mutate:  func(f *File) { f.Players[0].ID = 0 },
			wantErr: "id must be positive",
		},
		{
			name:    "missing player name",
			mutate:  func(f *File) { f.Players[0].Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "unknown position",
			mutate:  func(f *File) { f.Players[0].Position = "STRIKER" },
			wantErr: "unknown position",
		},
		{
			name:    "non-positive price",
			mutate:  func(f *File) { f.Players[0].Price = 0 },
			wantErr: "price must be positive",
		},
		{
			name:    "duplicate player id",
			mutate:  func(f *File) { f.Players[1].ID = 1 },
			wantErr: "duplicate player id",
		},
		{
			name:    "missing team name",
			mutate:  func(f *File) { f.Teams[0].Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "duplicate team name",
			mutate:  func(f *File) { f.Teams[1].Name = "Arsenal" },
			wantErr: "duplicate team name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := validFile()
			tt.mutate(&file)

			_, err := New(file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_ShortNameNeverShadowsFullName(t *testing.T) {
	file := validFile()
	file.Teams = []domain.Team{
		{ID: 1, Name: "Arsenal", ShortName: "ARS", Strength: 85},
		{ID: 2, Name: "ARS", Strength: 40},
	}

	ds, err := New(file)
	require.NoError(t, err)

	team, ok := ds.TeamByName("ARS")
	require.True(t, ok)
	assert.Equal(t, 40.0, team.Strength)
}

func TestUpcomingFixtures(t *testing.T) {
	ds, err := New(validFile())
	require.NoError(t, err)

	arsenal, ok := ds.TeamByName("Arsenal")
	require.True(t, ok)

	t.Run("sorted nearest gameweek first", func(t *testing.T) {
		run := ds.UpcomingFixtures(arsenal, 0)
		require.Len(t, run, 3)
		assert.Equal(t, []int{3, 4, 5}, []int{run[0].Gameweek, run[1].Gameweek, run[2].Gameweek})
		assert.Equal(t, "Brentford", run[0].Opponent)
	})

	t.Run("lookahead caps the run", func(t *testing.T) {
		run := ds.UpcomingFixtures(arsenal, 2)
		require.Len(t, run, 2)
		assert.Equal(t, 3, run[0].Gameweek)
		assert.Equal(t, 4, run[1].Gameweek)
	})

	t.Run("team without a run gets none", func(t *testing.T) {
		city, ok := ds.TeamByName("Man City")
		require.True(t, ok)
		assert.Empty(t, ds.UpcomingFixtures(city, 5))
	})
}

func TestPlayers_ReturnsCopy(t *testing.T) {
	ds, err := New(validFile())
	require.NoError(t, err)

	players := ds.Players()
	players[0].Name = "mutated"

	fresh := ds.Players()
	assert.Equal(t, "Saka", fresh[0].Name)
}

func TestLoad(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dataset.json")
		payload := `{
			"season": "2025/26",
			"gameweek": 7,
			"players": [
				{"id": 1, "name": "Saka", "team": "Arsenal", "position": "MID", "price": 10.0, "form": 7.2}
			],
			"teams": [
				{"id": 1, "name": "Arsenal", "strength": 85}
			],
			"fixtures": {
				"Arsenal": [{"gameweek": 8, "opponent": "Chelsea", "difficulty": 4, "home": true}]
			}
		}`
		require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

		ds, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 7, ds.Gameweek())

		p, ok := ds.Player(1)
		require.True(t, ok)
		assert.Equal(t, domain.Midfielder, p.Position)
		assert.Equal(t, 7.2, p.Form)

		arsenal, ok := ds.TeamByName("Arsenal")
		require.True(t, ok)
		run := ds.UpcomingFixtures(arsenal, 5)
		require.Len(t, run, 1)
		assert.True(t, run[0].Home)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read dataset file")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse dataset file")
	})
}
