package pagecap

import (
	"context"
	"regexp"
	"strings"
)

// Selector cascades tolerate markup drift across page redesigns: a fixed
// priority list of selectors is probed in order and the first one yielding a
// non-empty result wins. A cascade that matches nothing produces an empty
// value, never an error.

// FirstText probes selectors in order against the page and returns the first
// non-empty trimmed text.
func FirstText(ctx context.Context, p Page, selectors ...string) string {
	for _, sel := range selectors {
		el, err := p.Element(ctx, sel)
		if err != nil {
			continue
		}
		text, err := el.Text(ctx)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

// FirstAttr probes selectors in order and returns the first non-empty value
// of the named attribute.
func FirstAttr(ctx context.Context, p Page, attr string, selectors ...string) string {
	for _, sel := range selectors {
		el, err := p.Element(ctx, sel)
		if err != nil {
			continue
		}
		val, err := el.Attr(ctx, attr)
		if err != nil {
			continue
		}
		if val = strings.TrimSpace(val); val != "" {
			return val
		}
	}
	return ""
}

// GroupAttrs probes selector groups in order. The first group whose selectors
// match any element wins; the attribute values of all of that group's matches
// are accumulated, deduplicated by value, preserving document order.
func GroupAttrs(ctx context.Context, p Page, attr string, groups ...[]string) []string {
	return groupCollect(ctx, p, groups, func(ctx context.Context, el Element) string {
		val, err := el.Attr(ctx, attr)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(val)
	})
}

// GroupTexts probes selector groups in order, accumulating trimmed element
// texts from the first group that yields any result, deduplicated by value.
func GroupTexts(ctx context.Context, p Page, groups ...[]string) []string {
	return groupCollect(ctx, p, groups, func(ctx context.Context, el Element) string {
		text, err := el.Text(ctx)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(text)
	})
}

func groupCollect(ctx context.Context, p Page, groups [][]string, value func(context.Context, Element) string) []string {
	for _, group := range groups {
		var out []string
		seen := make(map[string]bool)
		for _, sel := range group {
			els, err := p.Elements(ctx, sel)
			if err != nil {
				continue
			}
			for _, el := range els {
				v := value(ctx, el)
				if v == "" || seen[v] {
					continue
				}
				seen[v] = true
				out = append(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// hashtagRE matches #tag tokens in free text. Letters, digits and
// underscores only; the terminating boundary is anything else.
var hashtagRE = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// Hashtags scans free text for #tag tokens and returns the tag names in
// order of first appearance, deduplicated case-sensitively.
func Hashtags(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range hashtagRE.FindAllStringSubmatch(text, -1) {
		tag := m[1]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// MergeTags appends tags from more to existing, preserving order and
// deduplicating case-sensitively.
func MergeTags(existing, more []string) []string {
	seen := make(map[string]bool, len(existing))
	out := make([]string, 0, len(existing)+len(more))
	for _, t := range existing {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	for _, t := range more {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
