package guide

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tripwise/cityguide/internal/cache"
	"github.com/tripwise/cityguide/internal/images"
	"github.com/tripwise/cityguide/internal/mediawiki"
	"github.com/tripwise/cityguide/internal/sources"
	"github.com/tripwise/cityguide/internal/tips"
)

const lisboaHTML = `<div class="mw-parser-output">
<h2><span class="mw-headline" id="Chegar">Chegar</span></h2>
<p>O metro liga o aeroporto ao centro da cidade em cerca de vinte minutos e funciona todos os dias.</p>
<p>Hotel Example, Rua das Flores 123, (+55) 11 4002-8922</p>
<p>Os elétricos históricos continuam a ser a forma mais agradável de subir as colinas da cidade velha.</p>
<p>Autocarros noturnos substituem o metro depois da uma da manhã e passam de meia em meia hora.</p>
<h2><span class="mw-headline" id="Durma">Durma</span></h2>
<p>Reserve alojamento na Alfama com antecedência durante os santos populares, a procura dispara nessa época.</p>
</div>`

// fixtureWiki emulates the slices of the MediaWiki APIs the engine touches.
func fixtureWiki(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/rest_v1/page/summary/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/Lisboa") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{
			"title": "Lisboa",
			"extract": "Lisboa é a capital de Portugal.",
			"lang": "pt",
			"content_urls": {"desktop": {"page": "https://pt.wikivoyage.org/wiki/Lisboa"}},
			"thumbnail": {"source": "https://upload.example.org/Lisboa.jpg"}
		}`)
	})

	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("action") == "parse":
			fmt.Fprintf(w, `{"parse": {"text": {"*": %q}}}`, lisboaHTML)

		case q.Get("gsrnamespace") == "6":
			// 12 commons candidates, two of them duplicate titles.
			var pages []string
			for i := 1; i <= 12; i++ {
				title := fmt.Sprintf("File:Lisboa %d.jpg", i)
				if i == 11 || i == 12 {
					title = fmt.Sprintf("File:Lisboa %d.jpg", i-10)
				}
				pages = append(pages, fmt.Sprintf(`"%d": {"title": %q, "index": %d, "imageinfo": [
					{"thumburl": "https://upload.example.org/%d.jpg", "mime": "image/jpeg", "width": 1200, "height": 900}
				]}`, i, title, i, i))
			}
			fmt.Fprintf(w, `{"query": {"pages": {%s}}}`, strings.Join(pages, ","))

		case strings.Contains(q.Get("prop"), "extracts"):
			extract := "Lisboa é a capital e a maior cidade de Portugal, situada na foz do rio Tejo.\n\n" +
				"== História ==\nFundada antes de Roma, a cidade foi reconstruída depois do terramoto de 1755.\n\n" +
				"== Cultura e Tradições ==\nO fado nasceu nos bairros históricos e é património imaterial.\n\n" +
				"== Veja ==\nO Castelo de São Jorge domina a colina mais alta da cidade."
			fmt.Fprintf(w, `{"query": {"pages": {"1": {"extract": %q}}}}`, extract)

		default:
			http.NotFound(w, r)
		}
	})

	return httptest.NewServer(mux)
}

func TestGetCityGuideEndToEnd(t *testing.T) {
	server := fixtureWiki(t)
	defer server.Close()
	host := strings.TrimPrefix(server.URL, "http://")

	client := mediawiki.New(5*time.Second, 100, "cityguided-test",
		mediawiki.WithScheme("http"), mediawiki.WithCommonsDomain(host))

	testSource := sources.Source{Name: "wikivoyage-pt", Domain: host, Lang: "pt", Kind: sources.KindTravel}
	svc := NewService(Deps{
		Fetcher:          client,
		Extracts:         client,
		Searcher:         client,
		Tips:             tips.NewExtractor(client),
		Images:           images.NewResolver(client),
		Cache:            cache.New(time.Hour),
		FallbackLanguage: "en",
		ImageLimit:       6,
		Chain: func(_, _ string) []sources.Source {
			return []sources.Source{testSource}
		},
	})

	g, err := svc.GetCityGuide(context.Background(), "Lisboa", "pt")
	if err != nil {
		t.Fatalf("GetCityGuide: %v", err)
	}
	if g == nil {
		t.Fatalf("expected a guide for Lisboa")
	}

	if g.CityName == "" {
		t.Errorf("expected non-empty city name")
	}
	if len(g.Images) > 6 {
		t.Errorf("expected at most 6 images, got %d", len(g.Images))
	}
	seen := map[string]bool{}
	for _, img := range g.Images {
		if seen[img.Title] {
			t.Errorf("duplicate image title %q", img.Title)
		}
		seen[img.Title] = true
	}

	if len(g.Sections) == 0 || g.Sections[0].Title != LeadSectionTitle {
		t.Fatalf("expected lead section titled %q, got %+v", LeadSectionTitle, g.Sections)
	}
	if g.History == "" || g.Culture == "" || g.Tourism == "" {
		t.Errorf("expected all topical slots filled: history=%q culture=%q tourism=%q", g.History, g.Culture, g.Tourism)
	}

	if len(g.Tips) == 0 {
		t.Fatalf("expected tips extracted from the rendered article")
	}
	for _, tip := range g.Tips {
		if strings.Contains(tip, "4002-8922") {
			t.Errorf("listing noise leaked into tips: %q", tip)
		}
		if n := len([]rune(tip)); n > 300+40 {
			t.Errorf("tip longer than the window plus prefix (%d chars): %q", n, tip)
		}
	}

	// Two categories with qualifying prose: arrival capped at 2, lodging 1.
	arrival := 0
	for _, tip := range g.Tips {
		if strings.HasPrefix(tip, "🚆 ") {
			arrival++
		}
	}
	if arrival != 2 {
		t.Errorf("expected the arrival category capped at 2 tips, got %d: %v", arrival, g.Tips)
	}
}
