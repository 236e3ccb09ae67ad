package menu

import (
	"testing"

	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	_, err := ValidateName("   ")
	require.Equal(t, ErrNameEmpty, err)
	require.Equal(t, "name is empty", err.Error())

	_, err = ValidateName(" a ")
	require.Equal(t, ErrNameShort, err)
	require.Equal(t, "name is too short", err.Error())

	name, err := ValidateName("  ada ")
	require.NoError(t, err)
	require.Equal(t, "ada", name)
}

func TestPlayFlow(t *testing.T) {
	m := New(prefs.DefaultColors)
	require.False(t, m.SubmitName())
	require.True(t, m.Play())
	require.Equal(t, ViewName, m.View)

	require.False(t, m.SubmitName())
	require.Equal(t, MsgNameEmpty, m.Error)
	require.Equal(t, "Please enter your name!", m.Error)

	require.True(t, m.Type('a'))
	require.Empty(t, m.Error, "typing clears the error")
	require.False(t, m.SubmitName())
	require.Equal(t, MsgNameShort, m.Error)
	require.Equal(t, "Name too short.", m.Error)

	require.True(t, m.Type('x'))
	require.True(t, m.Erase())
	require.True(t, m.Type('l'))
	require.False(t, m.Type('\n'))
	require.True(t, m.SubmitName())
	require.Equal(t, ViewGame, m.View)
	require.Equal(t, "al", m.Player)

	require.True(t, m.GameOver())
	require.Equal(t, ViewOver, m.View)
	require.True(t, m.Restart())
	require.Equal(t, ViewGame, m.View)
	require.True(t, m.Back())
	require.Equal(t, ViewMain, m.View)

	// The last name is offered again.
	require.True(t, m.Play())
	require.Equal(t, "al", string(m.Name))
}

func TestNameLengthCap(t *testing.T) {
	m := New(prefs.DefaultColors)
	m.Play()
	for i := 0; i < MaxNameLength; i++ {
		require.True(t, m.Type('z'))
	}
	require.False(t, m.Type('z'))
}

func TestCustomize(t *testing.T) {
	m := New(prefs.DefaultColors)
	require.False(t, m.CycleColor(true))
	require.True(t, m.Customize())

	require.True(t, m.CycleColor(true))
	require.Equal(t, prefs.Swatches.Next(prefs.DefaultColors.Snake), m.Colors.Snake)
	require.True(t, m.CycleColor(false))
	require.Equal(t, prefs.DefaultColors.Snake, m.Colors.Snake)

	require.True(t, m.NextField())
	require.Equal(t, FieldHead, m.Field)
	m.CycleColor(true)
	require.Equal(t, prefs.Swatches.Next(prefs.DefaultColors.Head), m.Color(FieldHead))

	m.NextField()
	m.NextField()
	require.Equal(t, FieldSnake, m.Field)
	require.True(t, m.Back())
}

func TestRows(t *testing.T) {
	rows := Rows([]scoreboard.Entry{{Name: "ada", Score: 12}, {Name: "", Score: 0}})
	require.Len(t, rows, scoreboard.MaxEntries)
	require.Equal(t, Row{Rank: "1", Name: "ada", Score: "12"}, rows[0])
	require.Equal(t, Row{Rank: "2", Name: Placeholder, Score: "0"}, rows[1])
	require.Equal(t, Row{Rank: "10", Name: Placeholder, Score: Placeholder}, rows[9])
}
