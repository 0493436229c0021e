package hfscrape_test

import (
	"testing"

	"github.com/fwojciec/hfscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTags(t *testing.T) {
	t.Parallel()

	tags := hfscrape.NewTags()

	require.Len(t, tags, 7)
	for _, c := range hfscrape.Categories() {
		v, ok := tags[c]
		assert.True(t, ok, "missing category %s", c)
		assert.Empty(t, v)
	}
}

func TestTags_Joined(t *testing.T) {
	t.Parallel()

	tags := hfscrape.NewTags()
	tags.Add(hfscrape.CategoryLanguage, "en")
	tags.Add(hfscrape.CategoryLanguage, "fr")

	assert.Equal(t, "en, fr", tags.Joined(hfscrape.CategoryLanguage))
	assert.Equal(t, "", tags.Joined(hfscrape.CategoryTask))
}

func TestModelRecord_RepositoryLinksJoined(t *testing.T) {
	t.Parallel()

	rec := &hfscrape.ModelRecord{RepositoryLinks: []string{"https://github.com/a/b", "https://github.com/c/d"}}
	assert.Equal(t, "https://github.com/a/b, https://github.com/c/d", rec.RepositoryLinksJoined())

	empty := &hfscrape.ModelRecord{}
	assert.Empty(t, empty.RepositoryLinksJoined())
}

func TestParseModelLink(t *testing.T) {
	t.Parallel()

	t.Run("splits owner and name", func(t *testing.T) {
		t.Parallel()

		link := hfscrape.ParseModelLink("/stabilityai/control-lora", hfscrape.DefaultOrigin)

		assert.Equal(t, "/stabilityai/control-lora", link.Address)
		assert.Equal(t, "control-lora", link.Name)
		assert.Equal(t, "stabilityai", link.Repository)
		assert.Equal(t, "https://huggingface.co/stabilityai/control-lora", link.URL)
	})

	t.Run("uses placeholder name for single segment links", func(t *testing.T) {
		t.Parallel()

		link := hfscrape.ParseModelLink("/gpt2", hfscrape.DefaultOrigin)

		assert.Equal(t, hfscrape.NamePlaceholder, link.Name)
		assert.Equal(t, "gpt2", link.Repository)
		assert.Equal(t, "https://huggingface.co/gpt2", link.URL)
	})

	t.Run("handles links without slashes", func(t *testing.T) {
		t.Parallel()

		link := hfscrape.ParseModelLink("gpt2", "https://example.com/")

		assert.Equal(t, hfscrape.NamePlaceholder, link.Name)
		assert.Empty(t, link.Repository)
		assert.Equal(t, "https://example.com/gpt2", link.URL)
	})
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("numbers records contiguously from one", func(t *testing.T) {
		t.Parallel()

		links := []hfscrape.ModelLink{
			hfscrape.ParseModelLink("/a/one", "https://hub"),
			hfscrape.ParseModelLink("/b/two", "https://hub"),
			hfscrape.ParseModelLink("/c/three", "https://hub"),
		}

		records := hfscrape.Aggregate(links, map[string]*hfscrape.Detail{})

		require.Len(t, records, 3)
		for i, r := range records {
			assert.Equal(t, i+1, r.Index)
			assert.Equal(t, links[i].URL, r.URL)
		}
	})

	t.Run("merges details by URL regardless of gaps", func(t *testing.T) {
		t.Parallel()

		links := []hfscrape.ModelLink{
			hfscrape.ParseModelLink("/a/one", "https://hub"),
			hfscrape.ParseModelLink("/b/two", "https://hub"),
		}
		tags := hfscrape.NewTags()
		tags.Add(hfscrape.CategoryTask, "Text Generation")
		details := map[string]*hfscrape.Detail{
			"https://hub/b/two": {
				Tags:            tags,
				RepositoryLinks: []string{"https://github.com/b/two"},
				Description:     "second model",
				HasDescription:  true,
			},
		}

		records := hfscrape.Aggregate(links, details)

		require.Len(t, records, 2)
		assert.Empty(t, records[0].Description)
		assert.Empty(t, records[0].Tags[hfscrape.CategoryTask])
		assert.Len(t, records[0].Tags, 7)
		assert.Equal(t, "second model", records[1].Description)
		assert.Equal(t, []string{"Text Generation"}, records[1].Tags[hfscrape.CategoryTask])
		assert.Equal(t, []string{"https://github.com/b/two"}, records[1].RepositoryLinks)
	})

	t.Run("repeated links share the same detail", func(t *testing.T) {
		t.Parallel()

		links := []hfscrape.ModelLink{
			hfscrape.ParseModelLink("/a/one", "https://hub"),
			hfscrape.ParseModelLink("/a/one", "https://hub"),
		}
		details := map[string]*hfscrape.Detail{
			"https://hub/a/one": {Tags: hfscrape.NewTags(), Description: "same"},
		}

		records := hfscrape.Aggregate(links, details)

		require.Len(t, records, 2)
		assert.Equal(t, 1, records[0].Index)
		assert.Equal(t, 2, records[1].Index)
		assert.Equal(t, records[0].Description, records[1].Description)
	})

	t.Run("returns empty slice for no links", func(t *testing.T) {
		t.Parallel()

		records := hfscrape.Aggregate(nil, nil)

		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		run := &hfscrape.Run{}
		err := run.Validate()

		require.Error(t, err)
		assert.Equal(t, hfscrape.EINVALID, hfscrape.ErrorCode(err))
	})

	t.Run("rejects gaps in record indexes", func(t *testing.T) {
		t.Parallel()

		run := &hfscrape.Run{
			BaseURL: hfscrape.DefaultBaseURL,
			Records: []*hfscrape.ModelRecord{{Index: 1}, {Index: 3}},
		}
		err := run.Validate()

		require.Error(t, err)
		assert.Equal(t, hfscrape.EINVALID, hfscrape.ErrorCode(err))
	})

	t.Run("accepts contiguous records", func(t *testing.T) {
		t.Parallel()

		run := &hfscrape.Run{
			BaseURL: hfscrape.DefaultBaseURL,
			Records: []*hfscrape.ModelRecord{{Index: 1}, {Index: 2}},
		}

		assert.NoError(t, run.Validate())
	})
}
