package commentbank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAlert(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		comment *string
		want    bool
	}{
		{"nil comment", nil, false},
		{"empty comment", strPtr(""), false},
		{"whitespace only", strPtr("   "), false},
		{"ok lowercase", strPtr("ok"), false},
		{"ok dotted", strPtr("O.K."), false},
		{"legalizado", strPtr("Legalizado"), false},
		{"legalizado oportunamente", strPtr("Legalizado OPORTUNAMENTE"), false},
		{"sin legalizar", strPtr("SIN LEGALIZAR"), true},
		{"partial", strPtr("Legalización PARCIAL"), true},
		{"free text", strPtr("revisar con tesorería"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAlert(tt.comment))
		})
	}
}

func TestBank_SeededWithPredefined(t *testing.T) {
	b := New()
	assert.Equal(t, Predefined, b.Comments())
}

func TestBank_Add(t *testing.T) {
	b := New()

	assert.True(t, b.Add("comentario nuevo"))
	assert.False(t, b.Add("comentario nuevo"))
	assert.False(t, b.Add(""))
	assert.False(t, b.Add("O.K."))

	assert.Len(t, b.Comments(), len(Predefined)+1)
}

func TestBank_Replace(t *testing.T) {
	b := New()

	b.Replace([]string{"solo este"})
	assert.Equal(t, []string{"solo este"}, b.Comments())

	// An empty replacement restores the predefined set.
	b.Replace(nil)
	assert.Equal(t, Predefined, b.Comments())
}

func TestBank_SaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.yaml")

	b := New()
	b.Add("comentario propio")
	require.NoError(t, b.SaveYAML(path))

	loaded := New()
	require.NoError(t, loaded.LoadYAML(path))
	assert.Equal(t, b.Comments(), loaded.Comments())
}

func TestBank_LoadYAML_MissingFile(t *testing.T) {
	b := New()
	assert.NoError(t, b.LoadYAML(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Equal(t, Predefined, b.Comments())
}

func TestBank_LoadYAML_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("comments: {not: [a list"), 0600))

	b := New()
	assert.Error(t, b.LoadYAML(path))
}
