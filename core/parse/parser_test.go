package parse_test

import (
	"encoding/base64"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prometheus42/gourmet2pdf/core"
	"github.com/prometheus42/gourmet2pdf/core/parse"
)

// onePixelGIF is a valid 1x1 GIF89a image.
const onePixelGIF = "R0lGODlhAQABAIAAAAUEBAAAACwAAAAAAQABAAACAkQBADs="

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<gourmetDoc>
  <recipe>
    <title>Käsekuchen</title>
    <source>Oma</source>
    <link>https://example.org/kuchen</link>
    <rating>7/10</rating>
    <category>Kuchen</category>
    <preptime>1/2 Stunden</preptime>
    <cooktime>45 Minuten</cooktime>
    <totaltime>1 Stunde 45 Minuten</totaltime>
    <yields>12 Stücke</yields>
    <image format="jpeg"><![CDATA[` + onePixelGIF + `]]></image>
    <inggroup>
      <groupname>Teig</groupname>
      <ingredient><amount>200</amount><unit>g</unit><item>Mehl</item></ingredient>
      <ingredient><amount>100</amount><unit>g</unit><item>Butter</item></ingredient>
    </inggroup>
    <inggroup>
      <groupname>Füllung</groupname>
      <ingredient><item>Quark</item></ingredient>
    </inggroup>
    <instructions>Teig kneten.
Backen.</instructions>
    <modifications>Weniger Zucker.</modifications>
  </recipe>
  <recipe>
    <title>Pfannkuchen</title>
    <ingredient><amount>2</amount><item>Eier</item></ingredient>
    <ingredient><amount>250</amount><unit>ml</unit><item>Milch</item></ingredient>
  </recipe>
</gourmetDoc>`

func testParser(strict bool) *parse.Parser {
	return parse.New(parse.Options{Strict: strict, Logger: log.New(io.Discard)})
}

func collect(t *testing.T, seq parse.Seq) []*core.Recipe {
	t.Helper()
	var recipes []*core.Recipe
	for r, err := range seq {
		require.NoError(t, err)
		recipes = append(recipes, r)
	}
	return recipes
}

func TestRecipesDocumentOrder(t *testing.T) {
	seq, err := testParser(false).Recipes([]byte(sampleDoc))
	require.NoError(t, err)

	recipes := collect(t, seq)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Käsekuchen", recipes[0].Title)
	assert.Equal(t, "Pfannkuchen", recipes[1].Title)
}

func TestRecipeFields(t *testing.T) {
	seq, err := testParser(false).Recipes([]byte(sampleDoc))
	require.NoError(t, err)
	recipes := collect(t, seq)
	require.Len(t, recipes, 2)

	r := recipes[0]
	assert.Equal(t, "Oma", r.Source)
	assert.Equal(t, "https://example.org/kuchen", r.Link)
	assert.Equal(t, "7/10", r.Rating)
	assert.Equal(t, "Kuchen", r.Category)
	assert.Equal(t, "PT0H30M", r.PrepTime)
	assert.Equal(t, "PT0H45M", r.CookTime)
	assert.Equal(t, "PT1H45M", r.TotalTime)
	assert.Equal(t, "12 Stücke", r.Yield)
	assert.Equal(t, "Teig kneten.\nBacken.", r.Instructions)
	assert.Equal(t, "Weniger Zucker.", r.Modifications)

	require.Len(t, r.Groups, 2)
	assert.Equal(t, "Teig", r.Groups[0].Name)
	assert.Equal(t, []core.Ingredient{
		{Amount: "200", Unit: "g", Item: "Mehl"},
		{Amount: "100", Unit: "g", Item: "Butter"},
	}, r.Groups[0].Ingredients)
	assert.Equal(t, "Füllung", r.Groups[1].Name)

	assert.Equal(t, core.ImageGIF, r.ImageType)
	assert.NotEmpty(t, r.Image)
	assert.False(t, r.ImageBroken)
}

func TestDirectIngredientsFormImplicitGroup(t *testing.T) {
	seq, err := testParser(false).Recipes([]byte(sampleDoc))
	require.NoError(t, err)
	recipes := collect(t, seq)
	require.Len(t, recipes, 2)

	r := recipes[1]
	require.Len(t, r.Groups, 1)
	assert.Empty(t, r.Groups[0].Name)
	require.Len(t, r.Groups[0].Ingredients, 2)
	assert.Equal(t, "Eier", r.Groups[0].Ingredients[0].Item)
}

func TestMissingTitleSkipped(t *testing.T) {
	doc := `<gourmetDoc>
  <recipe><source>nirgendwo</source></recipe>
  <recipe><title>Brot</title></recipe>
</gourmetDoc>`

	seq, err := testParser(false).Recipes([]byte(doc))
	require.NoError(t, err)
	recipes := collect(t, seq)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Brot", recipes[0].Title)
	assert.Empty(t, recipes[0].Groups)
}

func TestBrokenImageLenient(t *testing.T) {
	doc := `<gourmetDoc>
  <recipe><title>Brot</title><image>not-base64!!!</image></recipe>
</gourmetDoc>`

	seq, err := testParser(false).Recipes([]byte(doc))
	require.NoError(t, err)
	recipes := collect(t, seq)
	require.Len(t, recipes, 1)
	assert.True(t, recipes[0].ImageBroken)
	assert.Empty(t, recipes[0].Image)
}

func TestBrokenImageStrict(t *testing.T) {
	doc := `<gourmetDoc>
  <recipe><title>Brot</title><image>not-base64!!!</image></recipe>
  <recipe><title>Kuchen</title></recipe>
</gourmetDoc>`

	seq, err := testParser(true).Recipes([]byte(doc))
	require.NoError(t, err)

	var got []*core.Recipe
	var seqErr error
	for r, err := range seq {
		if err != nil {
			seqErr = err
			break
		}
		got = append(got, r)
	}
	require.Error(t, seqErr)
	assert.Empty(t, got)
}

func TestUnknownImageFormatIsBroken(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("definitely not an image"))
	doc := fmt.Sprintf(`<gourmetDoc>
  <recipe><title>Brot</title><image>%s</image></recipe>
</gourmetDoc>`, payload)

	seq, err := testParser(false).Recipes([]byte(doc))
	require.NoError(t, err)
	recipes := collect(t, seq)
	require.Len(t, recipes, 1)
	assert.True(t, recipes[0].ImageBroken)
}

func TestUnparseableDurationDegradesToAbsent(t *testing.T) {
	doc := `<gourmetDoc>
  <recipe><title>Brot</title><preptime>je nach Laune</preptime></recipe>
</gourmetDoc>`

	seq, err := testParser(false).Recipes([]byte(doc))
	require.NoError(t, err)
	recipes := collect(t, seq)
	require.Len(t, recipes, 1)
	assert.Empty(t, recipes[0].PrepTime)
}

func TestUnparseableRootIsFatal(t *testing.T) {
	_, err := testParser(false).Recipes([]byte("<gourmetDoc><recipe>"))
	require.Error(t, err)
}

func TestSniffImageType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "jpeg", data: []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, want: core.ImageJPEG},
		{name: "png", data: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00}, want: core.ImagePNG},
		{name: "gif", data: []byte("GIF89a..."), want: core.ImageGIF},
		{name: "unknown", data: []byte("plain text"), want: ""},
		{name: "short", data: []byte{0xff}, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parse.SniffImageType(tc.data))
		})
	}
}
