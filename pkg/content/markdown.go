package content

import (
	"errors"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/stevenAthompson/resume/pkg/mustache"
)

// Section heading names recognized in the content markdown.
const (
	sectionPersonalInfo   = "Personal Info"
	sectionSummary        = "Summary"
	sectionSkills         = "Skills"
	sectionCertsEducation = "Certs & Education"
	sectionAcknowledgment = "Acknowledgments"
	sectionExperience     = "Recent Experience"
	sectionKeywords       = "Keywords"
)

var (
	// [text](href) markdown links, matched against a whole value.
	linkRe = regexp.MustCompile(`^\[(.+?)\]\((.+?)\)$`)
	// - **Label**: value
	labeledItemRe = regexp.MustCompile(`^-\s+\*\*(.+?)\*\*:\s*(.+)$`)
	// Skill — 80% (em dash, with a plain hyphen fallback)
	skillEmDashRe = regexp.MustCompile(`^(.+?)\s+—\s+(\d+)\s*%$`)
	skillHyphenRe = regexp.MustCompile(`^(.+?)\s+-\s+(\d+)\s*%$`)
	// **Dates:** May 2020 – Present
	datesRe = regexp.MustCompile(`^\*\*Dates:\*\*\s*(.+)$`)
	// **Lead:** bullet text
	bulletLeadRe = regexp.MustCompile(`^\*\*(.+?)\*\*\s*(.+)$`)
)

// ErrNoName reports content markdown without an H1 name heading, the one
// structural element extraction cannot do without.
var ErrNoName = errors.New("no H1 name heading in content markdown")

// unescapeEntities lets authors keep &amp; / &nbsp; and friends in their
// markdown and still get correct output after the engine re-escapes.
func unescapeEntities(s string) string {
	return html.UnescapeString(s)
}

// parseLink splits a markdown link into its text and href. Plain text comes
// back with an empty href.
func parseLink(s string) (text, href string) {
	s = strings.TrimSpace(s)
	if m := linkRe.FindStringSubmatch(s); m != nil {
		return unescapeEntities(strings.TrimSpace(m[1])), strings.TrimSpace(m[2])
	}
	return unescapeEntities(s), ""
}

// ParseResume extracts a render context from resume markdown. The result is
// a mapping with person (full/first/last name), personal_info, summary,
// skills, certs_education, acknowledgments, experience and keywords fields,
// shaped the way the stock resume templates expect. Only a missing H1 name
// is an error; any other missing or malformed section produces an absent or
// empty field.
func ParseResume(md string) (mustache.Value, error) {
	lines := strings.Split(md, "\n")
	i := 0

	for i < len(lines) && !strings.HasPrefix(lines[i], "# ") {
		i++
	}
	if i >= len(lines) {
		return mustache.Value{}, ErrNoName
	}
	fullName := strings.TrimSpace(lines[i][2:])
	nameParts := strings.Fields(fullName)
	firstName := ""
	lastName := ""
	if len(nameParts) > 0 {
		firstName = nameParts[0]
	}
	if len(nameParts) > 1 {
		lastName = nameParts[len(nameParts)-1]
	}
	i++

	// Collect section bodies keyed by their H2 heading.
	sections := make(map[string][]string)
	current := ""
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "## ") {
			current = strings.TrimSpace(line[3:])
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}

	ctx := map[string]mustache.Value{
		"person": mustache.Map(map[string]mustache.Value{
			"full_name":  mustache.String(fullName),
			"first_name": mustache.String(firstName),
			"last_name":  mustache.String(lastName),
		}),
		"personal_info":   parsePersonalInfo(sections[sectionPersonalInfo]),
		"summary":         mustache.String(joinParagraph(sections[sectionSummary])),
		"skills":          parseSkills(sections[sectionSkills]),
		"certs_education": parseSimpleList(sections[sectionCertsEducation]),
		"acknowledgments": parseSimpleList(sections[sectionAcknowledgment]),
		"experience":      parseExperience(sections[sectionExperience]),
		"keywords":        mustache.String(joinParagraph(sections[sectionKeywords])),
	}
	return mustache.Map(ctx), nil
}

// joinParagraph folds a section body into one entity-unescaped line.
func joinParagraph(lines []string) string {
	var parts []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return unescapeEntities(strings.Join(parts, " "))
}

// parsePersonalInfo reads "- **Label**: value" items, where the value may be
// a markdown link.
func parsePersonalInfo(lines []string) mustache.Value {
	var items []mustache.Value
	for _, line := range lines {
		m := labeledItemRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		value, href := parseLink(m[2])
		entry := map[string]mustache.Value{
			"label": mustache.String(unescapeEntities(strings.TrimSpace(m[1]))),
			"value": mustache.String(value),
		}
		if href != "" {
			entry["href"] = mustache.String(href)
		}
		items = append(items, mustache.Map(entry))
	}
	return mustache.List(items...)
}

// parseSkills reads "- Name — 80%" items, accepting a plain hyphen in place
// of the em dash.
func parseSkills(lines []string) mustache.Value {
	var items []mustache.Value
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- ") {
			continue
		}
		item := strings.TrimSpace(trimmed[2:])
		m := skillEmDashRe.FindStringSubmatch(item)
		if m == nil {
			m = skillHyphenRe.FindStringSubmatch(item)
		}
		if m == nil {
			continue
		}
		percent, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		items = append(items, mustache.Map(map[string]mustache.Value{
			"name":    mustache.String(unescapeEntities(strings.TrimSpace(m[1]))),
			"percent": mustache.Number(float64(percent)),
		}))
	}
	return mustache.List(items...)
}

// parseSimpleList reads "- text" items with an optional markdown link.
func parseSimpleList(lines []string) mustache.Value {
	var items []mustache.Value
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- ") {
			continue
		}
		text, href := parseLink(trimmed[2:])
		entry := map[string]mustache.Value{"text": mustache.String(text)}
		if href != "" {
			entry["href"] = mustache.String(href)
		}
		items = append(items, mustache.Map(entry))
	}
	return mustache.List(items...)
}

// parseExperience reads repeating job blocks: "### Title — Company", an
// optional "**Dates:**" line, a description paragraph and "- **Lead:** text"
// bullets, terminated by the next "###" heading.
func parseExperience(lines []string) mustache.Value {
	var jobs []mustache.Value
	j := 0
	for j < len(lines) {
		line := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(line, "### ") {
			j++
			continue
		}
		header := strings.TrimSpace(line[4:])
		title, company := header, ""
		if parts := strings.SplitN(header, " — ", 2); len(parts) == 2 {
			title = strings.TrimSpace(parts[0])
			company = strings.TrimSpace(parts[1])
		}
		j++

		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		dates := ""
		if j < len(lines) {
			if m := datesRe.FindStringSubmatch(strings.TrimSpace(lines[j])); m != nil {
				dates = unescapeEntities(strings.TrimSpace(m[1]))
				j++
			}
		}

		var descParts []string
		for j < len(lines) {
			t := strings.TrimSpace(lines[j])
			if strings.HasPrefix(t, "### ") || strings.HasPrefix(t, "- ") {
				break
			}
			if t != "" {
				descParts = append(descParts, t)
			}
			j++
		}
		description := strings.TrimSpace(unescapeEntities(strings.Join(descParts, " ")))

		var bullets []mustache.Value
		for j < len(lines) {
			t := strings.TrimSpace(lines[j])
			if strings.HasPrefix(t, "### ") {
				break
			}
			if strings.HasPrefix(t, "- ") {
				b := strings.TrimSpace(t[2:])
				lead, text := "", unescapeEntities(b)
				if m := bulletLeadRe.FindStringSubmatch(b); m != nil {
					lead = unescapeEntities(strings.TrimSpace(m[1]))
					text = unescapeEntities(strings.TrimSpace(m[2]))
				}
				bullets = append(bullets, mustache.Map(map[string]mustache.Value{
					"lead": mustache.String(lead),
					"text": mustache.String(text),
				}))
			}
			j++
		}

		jobs = append(jobs, mustache.Map(map[string]mustache.Value{
			"dates":       mustache.String(dates),
			"title":       mustache.String(unescapeEntities(title)),
			"company":     mustache.String(unescapeEntities(company)),
			"description": mustache.String(description),
			"bullets":     mustache.List(bullets...),
		}))
	}
	return mustache.List(jobs...)
}
