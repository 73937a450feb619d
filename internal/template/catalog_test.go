package template

import (
	"testing"

	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuiltin_MatchesOriginalPresets(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	assert.Equal(t, []domain.EventKind{domain.KindSchool, domain.KindOffice}, c.Kinds())

	school := c.List(domain.KindSchool)
	require.Len(t, school, 4)
	assert.Equal(t, "입학식", school[0].Name)
	assert.Len(t, school[0].Labels, 6)
	assert.Len(t, school[1].Labels, 8)
	assert.True(t, school[3].IsCustom())
	assert.Empty(t, school[3].Labels)

	office := c.List(domain.KindOffice)
	require.Len(t, office, 4)
	assert.Equal(t, "교육감 이취임식", office[0].Name)
	assert.Len(t, office[0].Labels, 7)
}

func TestPreset_KeyIncludesKind(t *testing.T) {
	c := MustBuiltin()
	school, err := c.Get(domain.KindSchool, CustomName)
	require.NoError(t, err)
	office, err := c.Get(domain.KindOffice, CustomName)
	require.NoError(t, err)

	assert.NotEqual(t, school.Key(), office.Key())
	assert.Equal(t, "", school.SuggestedEventName())
}

func TestGet_ByNameOrNumber(t *testing.T) {
	c := MustBuiltin()

	p, err := c.Get(domain.KindSchool, "졸업식")
	require.NoError(t, err)
	assert.Equal(t, "졸업식", p.SuggestedEventName())

	p, err = c.Get(domain.KindOffice, "2")
	require.NoError(t, err)
	assert.Equal(t, "교육청 학술대회", p.Name)

	_, err = c.Get(domain.KindOffice, "입학식")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = c.Get(domain.KindSchool, "9")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDefault(t *testing.T) {
	c := MustBuiltin()
	p, err := c.Default(domain.KindSchool)
	require.NoError(t, err)
	assert.Equal(t, "입학식", p.Name)

	_, err = NewCatalog().Default(domain.KindSchool)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestLoadDir_OverridesAndAppends(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tpl/custom.yaml", []byte(`
- kind: 학교 행사
  presets:
    - name: 입학식
      labels: [개식사, 폐식사]
    - name: 개교기념식
      labels: [개식사, 학교 연혁 소개, 폐식사]
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/tpl/broken.yml", []byte(`- kind: [`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/tpl/invalid.yaml", []byte(`
- kind: 동아리 행사
  presets:
    - name: x
      labels: [a]
`), 0o644))

	c := MustBuiltin()
	require.NoError(t, c.LoadDir(fs, "/tpl", zap.NewNop()))

	school := c.List(domain.KindSchool)
	require.Len(t, school, 5)
	assert.Equal(t, []string{"개식사", "폐식사"}, school[0].Labels)
	assert.Equal(t, "개교기념식", school[4].Name)
	assert.Len(t, c.Kinds(), 2)
}

func TestLoadDir_MissingDir(t *testing.T) {
	c := MustBuiltin()
	assert.NoError(t, c.LoadDir(afero.NewMemMapFs(), "/nope", nil))
	assert.NoError(t, c.LoadDir(afero.NewMemMapFs(), "", nil))
}

func TestList_ReturnsCopy(t *testing.T) {
	c := MustBuiltin()
	list := c.List(domain.KindSchool)
	list[0].Name = "changed"
	assert.Equal(t, "입학식", c.List(domain.KindSchool)[0].Name)
}
