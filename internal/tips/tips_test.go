package tips

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture HTML: %v", err)
	}
	return doc
}

const tipPara1 = "Buy a rechargeable transit card at any metro station, it works on trams and ferries as well."
const tipPara2 = "Night buses replace the metro after one in the morning and run every thirty minutes from the main square."
const tipPara3 = "Taxis from the airport charge a flat rate to the center, agree on it before getting in the car."

func TestExtractCapsTipsPerCategory(t *testing.T) {
	html := `<div class="mw-parser-output">
		<h2><span class="mw-headline" id="Get_in">Get in</span></h2>
		<p>` + tipPara1 + `</p>
		<p>` + tipPara2 + `</p>
		<p>` + tipPara3 + `</p>
		<h2><span class="mw-headline" id="See">See</span></h2>
		<p>Not a tip category heading we extract from.</p>
	</div>`

	tips := ExtractFromDocument(docFromHTML(t, html))
	if len(tips) != 2 {
		t.Fatalf("expected exactly 2 tips for a category with 3 qualifying paragraphs, got %d: %v", len(tips), tips)
	}
	for _, tip := range tips {
		if !strings.HasPrefix(tip, "🚆 Getting there: ") {
			t.Errorf("expected category prefix on tip, got %q", tip)
		}
	}
	if !strings.Contains(tips[0], "transit card") || !strings.Contains(tips[1], "Night buses") {
		t.Errorf("expected document-order tips, got %v", tips)
	}
}

func TestExtractStopsAtNextHeading(t *testing.T) {
	html := `<div>
		<h2><span class="mw-headline" id="Sleep">Sleep</span></h2>
		<p>` + tipPara1 + `</p>
		<h2><span class="mw-headline" id="Unrelated">Unrelated</span></h2>
		<p>` + tipPara2 + `</p>
	</div>`

	tips := ExtractFromDocument(docFromHTML(t, html))
	if len(tips) != 1 {
		t.Fatalf("expected the walk to stop at the next heading, got %d tips: %v", len(tips), tips)
	}
	if !strings.HasPrefix(tips[0], "🏨 Sleep: ") {
		t.Errorf("unexpected tip: %q", tips[0])
	}
}

func TestExtractLowerRankHeadingDoesNotStopWalk(t *testing.T) {
	html := `<div>
		<h2><span class="mw-headline" id="Eat">Eat</span></h2>
		<h3><span class="mw-headline" id="Budget_food">Budget food</span></h3>
		<p>` + tipPara1 + `</p>
	</div>`

	tips := ExtractFromDocument(docFromHTML(t, html))
	if len(tips) != 1 {
		t.Fatalf("a subsection heading must not end the walk, got %d tips: %v", len(tips), tips)
	}
}

func TestExtractListItems(t *testing.T) {
	html := `<div>
		<h2><span class="mw-headline" id="Stay_safe">Stay safe</span></h2>
		<ul>
			<li>` + tipPara1 + `</li>
			<li>Hotel Example, Rua das Flores 123, (+55) 11 4002-8922</li>
			<li>` + tipPara2 + `</li>
		</ul>
	</div>`

	tips := ExtractFromDocument(docFromHTML(t, html))
	if len(tips) != 2 {
		t.Fatalf("expected listing noise filtered from list items, got %d: %v", len(tips), tips)
	}
	for _, tip := range tips {
		if strings.Contains(tip, "4002-8922") {
			t.Errorf("listing noise leaked into tips: %q", tip)
		}
	}
}

func TestExtractPortugueseHeadings(t *testing.T) {
	html := `<div>
		<h2><span class="mw-headline" id="Chegar">Chegar</span></h2>
		<p>` + tipPara3 + `</p>
	</div>`

	tips := ExtractFromDocument(docFromHTML(t, html))
	if len(tips) != 1 {
		t.Fatalf("expected Portuguese heading vocabulary to be recognized, got %d: %v", len(tips), tips)
	}
	if !strings.HasPrefix(tips[0], "🚆 Getting there: ") {
		t.Errorf("unexpected category for Chegar section: %q", tips[0])
	}
}

func TestExtractMissingHeadings(t *testing.T) {
	html := `<div><p>An article with no practical sections at all.</p></div>`

	tips := ExtractFromDocument(docFromHTML(t, html))
	if len(tips) != 0 {
		t.Errorf("expected no tips without category headings, got %v", tips)
	}
}

func TestExtractHeadingWrapperDivs(t *testing.T) {
	// Newer parser output wraps headings in container divs.
	html := `<div>
		<div class="mw-heading mw-heading2"><h2 id="Get_in">Get in</h2></div>
		<p>` + tipPara1 + `</p>
		<div class="mw-heading mw-heading2"><h2 id="See">See</h2></div>
		<p>` + tipPara2 + `</p>
	</div>`

	tips := ExtractFromDocument(docFromHTML(t, html))
	if len(tips) != 1 {
		t.Fatalf("expected wrapper-div headings handled, got %d: %v", len(tips), tips)
	}
	if !strings.Contains(tips[0], "transit card") {
		t.Errorf("unexpected tip: %q", tips[0])
	}
}

func TestExtractCitationsStripped(t *testing.T) {
	html := `<div>
		<h2><span class="mw-headline" id="Connect">Connect</span></h2>
		<p>Free wireless internet is available in most squares and public libraries across the city.[3][note 1]</p>
	</div>`

	tips := ExtractFromDocument(docFromHTML(t, html))
	if len(tips) != 1 {
		t.Fatalf("expected one tip, got %d: %v", len(tips), tips)
	}
	if strings.Contains(tips[0], "[3]") || strings.Contains(tips[0], "[note 1]") {
		t.Errorf("citation markers must be stripped: %q", tips[0])
	}
}
