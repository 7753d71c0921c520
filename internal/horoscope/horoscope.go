// Package horoscope maps a birthday to a zodiac sign and fetches the sign's
// daily horoscope. Failures here are soft: the reminder renders without it.
package horoscope

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

var (
	ErrBadBirthday = errors.New("horoscope: invalid birthday")
	ErrNotFound    = errors.New("horoscope: content not found")
)

// SignForBirthday parses "YYYY-MM-DD" or "MM-DD" and returns the zodiac sign.
// February 29 is accepted.
func SignForBirthday(birthday string) (Sign, error) {
	parts := strings.Split(strings.TrimSpace(birthday), "-")
	var monthStr, dayStr string
	switch len(parts) {
	case 3:
		monthStr, dayStr = parts[1], parts[2]
	case 2:
		monthStr, dayStr = parts[0], parts[1]
	default:
		return "", fmt.Errorf("%w: %q, use YYYY-MM-DD or MM-DD", ErrBadBirthday, birthday)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadBirthday, birthday)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadBirthday, birthday)
	}
	return signFor(day, month)
}

func signFor(day, month int) (Sign, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: month %d", ErrBadBirthday, month)
	}
	daysInMonth := []int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if day < 1 || day > daysInMonth[month-1] {
		return "", fmt.Errorf("%w: day %d", ErrBadBirthday, day)
	}
	switch {
	case (month == 12 && day >= 22) || (month == 1 && day <= 19):
		return Capricorn, nil
	case (month == 1 && day >= 20) || (month == 2 && day <= 18):
		return Aquarius, nil
	case (month == 2 && day >= 19) || (month == 3 && day <= 20):
		return Pisces, nil
	case (month == 3 && day >= 21) || (month == 4 && day <= 19):
		return Aries, nil
	case (month == 4 && day >= 20) || (month == 5 && day <= 20):
		return Taurus, nil
	case (month == 5 && day >= 21) || (month == 6 && day <= 20):
		return Gemini, nil
	case (month == 6 && day >= 21) || (month == 7 && day <= 22):
		return Cancer, nil
	case (month == 7 && day >= 23) || (month == 8 && day <= 22):
		return Leo, nil
	case (month == 8 && day >= 23) || (month == 9 && day <= 22):
		return Virgo, nil
	case (month == 9 && day >= 23) || (month == 10 && day <= 22):
		return Libra, nil
	case (month == 10 && day >= 23) || (month == 11 && day <= 21):
		return Scorpio, nil
	default:
		return Sagittarius, nil
	}
}

const defaultBaseURL = "https://www.astroyogi.com/horoscopes/daily"

// Client fetches daily horoscopes.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBase exists for tests pointing at a local server.
func NewClientWithBase(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Daily fetches and extracts today's horoscope for the sign. It returns the
// text and the page URL.
func (c *Client) Daily(ctx context.Context, sign Sign) (string, string, error) {
	url := fmt.Sprintf("%s/%s-free-horoscope.aspx", c.baseURL, strings.ToLower(string(sign)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch horoscope: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch horoscope: status %d", resp.StatusCode)
	}

	text, err := extract(resp.Body)
	if err != nil {
		return "", "", err
	}
	return text, url, nil
}

// extract walks the page for the content div and picks the paragraph whose
// text starts with "Dear ". Page structure changes will surface here.
func extract(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse horoscope page: %w", err)
	}
	content := findByClass(doc, "div", "content-page")
	if content == nil {
		return "", fmt.Errorf("%w: no content div", ErrNotFound)
	}
	for _, p := range findAll(content, "p") {
		text := strings.TrimSpace(nodeText(p))
		if strings.HasPrefix(text, "Dear ") {
			return normalize(text), nil
		}
	}
	return "", fmt.Errorf("%w: no paragraph starting with 'Dear'", ErrNotFound)
}

func normalize(text string) string {
	// The source brands itself mid-sentence and lowercases some sentence
	// starts.
	text = strings.ReplaceAll(text, "Astroyogi a", "a")
	sentences := strings.Split(text, ". ")
	for i, s := range sentences {
		if s == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(s)
		sentences[i] = string(unicode.ToUpper(r)) + s[size:]
	}
	return strings.Join(sentences, ". ")
}

func findByClass(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		for _, attr := range n.Attr {
			if attr.Key == "class" && hasClass(attr.Val, class) {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(attr, class string) bool {
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
