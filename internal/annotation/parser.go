package annotation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/conduit-lang/synth/internal/errors"
)

var (
	functionRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9._]*)\s*<-\s*function\s*\(`)
	datasetRe  = regexp.MustCompile(`^"([A-Za-z][A-Za-z0-9._]*)"\s*$`)
	constantRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9._]*)\s*<-\s*\S`)
	dimsRe     = regexp.MustCompile(`^\d+x\d+$`)
)

// Parser scans one source unit into declarations with attached annotation
// blocks. Parse errors are collected, not returned eagerly, so a single run
// reports every malformed block in one pass.
//
// Thread Safety: Parser instances are NOT thread-safe. Each goroutine must
// create its own Parser via New(). This is the intended usage for the
// parallel parse stage.
type Parser struct {
	path  string
	lines []string
	depth int // brace/paren nesting; declarations are recognized at depth 0 only
	diags errors.List
}

// New creates a Parser for one source unit
func New(path, source string) *Parser {
	return &Parser{
		path:  path,
		lines: strings.Split(source, "\n"),
		diags: make(errors.List, 0),
	}
}

// Parse scans the whole unit and returns it together with any collected
// diagnostics. The unit is always returned; declarations whose annotations
// are malformed keep the block minus the malformed value.
func (p *Parser) Parse() (*Unit, errors.List) {
	unit := &Unit{Path: p.path, Declarations: make([]*Declaration, 0)}

	var pending *Block
	for i := 0; i < len(p.lines); i++ {
		line := p.lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case p.depth == 0 && strings.HasPrefix(trimmed, Prefix):
			block, next := p.scanBlock(i)
			pending = block
			i = next - 1

		case trimmed == "":
			if pending != nil {
				p.diags = append(p.diags, errors.NewOrphanAnnotation(p.location(pending.StartLine)))
				pending = nil
			}

		case p.depth == 0 && strings.HasPrefix(trimmed, "#"):
			// Plain comment; does not break block attachment

		default:
			if p.depth == 0 {
				if decl := p.matchDeclaration(trimmed, i+1); decl != nil {
					decl.Block = pending
					pending = nil
					p.trackDepth(line)
					decl.EndLine = i + 1
					// Consume the body so nested lines are never
					// mistaken for declarations
					for p.depth > 0 && i+1 < len(p.lines) {
						i++
						p.trackDepth(p.lines[i])
						decl.EndLine = i + 1
					}
					unit.Declarations = append(unit.Declarations, decl)
					continue
				}
			}
			if pending != nil {
				p.diags = append(p.diags, errors.NewOrphanAnnotation(p.location(pending.StartLine)))
				pending = nil
			}
			p.trackDepth(line)
		}
	}

	if pending != nil {
		p.diags = append(p.diags, errors.NewOrphanAnnotation(p.location(pending.StartLine)))
	}

	return unit, p.diags
}

// scanBlock consumes consecutive prefix lines starting at index start and
// returns the parsed block plus the index of the first non-prefix line
func (p *Parser) scanBlock(start int) (*Block, int) {
	block := &Block{Tags: make([]Tag, 0), StartLine: start + 1}

	var description strings.Builder
	i := start
	for ; i < len(p.lines); i++ {
		trimmed := strings.TrimSpace(p.lines[i])
		if !strings.HasPrefix(trimmed, Prefix) {
			break
		}
		body := strings.TrimPrefix(trimmed, Prefix)
		body = strings.TrimPrefix(body, " ")

		if strings.HasPrefix(body, "@") {
			key, value := splitTag(body)
			kind, ok := recognizedTags[key]
			if !ok {
				kind = TagUnknown
				diag := errors.NewUnrecognizedTag(key, p.location(i+1))
				if match := closestTag(key); match != "" {
					diag = diag.WithSuggestion("did you mean '@" + match + "'?")
				}
				p.diags = append(p.diags, diag)
			}
			tag := Tag{Key: key, Kind: kind, Value: value, Line: i + 1}
			p.validateTag(&tag)
			block.Tags = append(block.Tags, tag)
		} else if len(block.Tags) > 0 {
			// Continuation of the previous tag's value
			last := &block.Tags[len(block.Tags)-1]
			last.Value = joinText(last.Value, strings.TrimSpace(body))
		} else {
			if description.Len() > 0 {
				description.WriteString(" ")
			}
			description.WriteString(strings.TrimSpace(body))
		}
	}

	block.EndLine = i
	block.Description = strings.TrimSpace(description.String())
	return block, i
}

// validateTag checks tags whose values carry structure and records
// MalformedAnnotation diagnostics for values that do not parse
func (p *Parser) validateTag(tag *Tag) {
	loc := p.location(tag.Line)

	switch tag.Kind {
	case TagImportFrom:
		if len(strings.Fields(tag.Value)) < 2 {
			p.diags = append(p.diags, errors.NewMalformedAnnotation(
				tag.Key, "@importFrom requires a package and a symbol", loc))
		}
	case TagFormat:
		if _, err := ParseFormat(tag.Value); err != "" {
			p.diags = append(p.diags, errors.NewMalformedAnnotation(tag.Key, err, loc))
		}
	case TagParam:
		if tag.Value == "" {
			p.diags = append(p.diags, errors.NewMalformedAnnotation(
				tag.Key, "@param requires a parameter name", loc))
		}
	}
}

// ParseFormat parses a @format value of the form "<container> [<rows>x<cols>]".
// The second return is a non-empty description of the problem on failure.
func ParseFormat(value string) (Format, string) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return Format{}, "@format requires a container description"
	}

	format := Format{Container: fields[0]}
	if len(fields) == 1 {
		return format, ""
	}

	if !dimsRe.MatchString(fields[1]) {
		return Format{}, "dimensions must look like 150x5"
	}
	parts := strings.SplitN(fields[1], "x", 2)
	format.Rows, _ = strconv.Atoi(parts[0])
	format.Cols, _ = strconv.Atoi(parts[1])
	format.HasDims = true
	return format, ""
}

// matchDeclaration recognizes a top-level declaration on one trimmed line
func (p *Parser) matchDeclaration(trimmed string, line int) *Declaration {
	if m := functionRe.FindStringSubmatch(trimmed); m != nil {
		return &Declaration{Name: m[1], Kind: KindFunction, Line: line}
	}
	if m := datasetRe.FindStringSubmatch(trimmed); m != nil {
		return &Declaration{Name: m[1], Kind: KindDataset, Line: line}
	}
	if m := constantRe.FindStringSubmatch(trimmed); m != nil {
		return &Declaration{Name: m[1], Kind: KindConstant, Line: line}
	}
	return nil
}

// trackDepth updates brace/paren nesting for one line, skipping string
// literals and trailing comments so punctuation inside them is not counted
func (p *Parser) trackDepth(line string) {
	inString := false
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == quote {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '#':
			return
		case '(', '{', '[':
			p.depth++
		case ')', '}', ']':
			if p.depth > 0 {
				p.depth--
			}
		}
	}
}

// location builds a diagnostic location inside this unit
func (p *Parser) location(line int) errors.Location {
	return errors.Location{File: p.path, Line: line}
}

// splitTag splits "@key rest..." into key and trimmed value
func splitTag(body string) (string, string) {
	body = strings.TrimPrefix(body, "@")
	idx := strings.IndexAny(body, " \t")
	if idx < 0 {
		return body, ""
	}
	return body[:idx], strings.TrimSpace(body[idx+1:])
}

// joinText appends a continuation line to an existing value
func joinText(existing, next string) string {
	if existing == "" {
		return next
	}
	if next == "" {
		return existing
	}
	return existing + " " + next
}
