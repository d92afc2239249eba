package reagent

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Default literal markers the model is instructed to emit. The parser and the
// system prompt template share them so the contract stays in one place.
const (
	DefaultAnswerMarker = "Final Answer:"
	DefaultActionStart  = "[ACTION_START]"
	DefaultActionEnd    = "[ACTION_END]"
)

// ReplyKind tags the classification of a parsed model reply.
type ReplyKind int

const (
	// ReplyAction is a request to invoke a tool.
	ReplyAction ReplyKind = iota

	// ReplyFinalAnswer terminates the loop with an answer.
	ReplyFinalAnswer

	// ReplyMalformed is anything the parser could not classify. The loop
	// feeds the Reason back to the model as a corrective observation.
	ReplyMalformed
)

// String returns a short label for the reply kind.
func (k ReplyKind) String() string {
	switch k {
	case ReplyAction:
		return "action"
	case ReplyFinalAnswer:
		return "final_answer"
	case ReplyMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ParsedReply is the classified form of a raw model reply.
type ParsedReply struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind ReplyKind

	// Reasoning is the free text preceding the recognized marker, trimmed.
	// Empty for malformed replies.
	Reasoning string

	// ToolName and Args are set when Kind is ReplyAction.
	ToolName string
	Args     map[string]any

	// Answer is set when Kind is ReplyFinalAnswer.
	Answer string

	// Raw is the unmodified reply text, always set.
	Raw string

	// Reason describes the defect when Kind is ReplyMalformed. Never empty
	// for malformed replies.
	Reason string
}

// Parser extracts the reasoning segment from a model reply and classifies it
// as an action request or a final answer.
//
// The recognized structure is the one the system prompt instructs the model
// to produce: free reasoning text followed by either
//
//	Final Answer: <answer text>
//
// or an action block
//
//	[ACTION_START]
//	{"tool": "add_numbers", "args": {"a": 1, "b": 2}}
//	[ACTION_END]
//
// Parse never returns an error and never panics; unclassifiable input becomes
// a ReplyMalformed with a descriptive reason.
type Parser struct {
	answerMarker string
	actionStart  string
	actionEnd    string
	actionRe     *regexp.Regexp
}

// NewParser creates a Parser with the default markers.
func NewParser() *Parser {
	return newParser(DefaultAnswerMarker, DefaultActionStart, DefaultActionEnd)
}

// NewParserWithMarkers creates a Parser with custom literal markers. All
// three must be non-empty; the same markers must be fed to the system prompt
// or the model will never produce them.
func NewParserWithMarkers(answerMarker, actionStart, actionEnd string) *Parser {
	if answerMarker == "" || actionStart == "" || actionEnd == "" {
		panic("reagent: parser markers must be non-empty")
	}
	return newParser(answerMarker, actionStart, actionEnd)
}

func newParser(answerMarker, actionStart, actionEnd string) *Parser {
	pattern := fmt.Sprintf(
		`(?s)%s\s*(\{.*?\})\s*%s`,
		regexp.QuoteMeta(actionStart),
		regexp.QuoteMeta(actionEnd),
	)
	return &Parser{
		answerMarker: answerMarker,
		actionStart:  actionStart,
		actionEnd:    actionEnd,
		actionRe:     regexp.MustCompile(pattern),
	}
}

// AnswerMarker returns the final-answer marker literal.
func (p *Parser) AnswerMarker() string { return p.answerMarker }

// ActionMarkers returns the action block start and end literals.
func (p *Parser) ActionMarkers() (start, end string) {
	return p.actionStart, p.actionEnd
}

// Parse classifies raw reply text.
//
// The final-answer marker takes precedence: when a reply contains both an
// action block and the marker, it is classified as a final answer. The model
// is told not to combine them, but termination winning over further tool use
// is the safe reading when it does.
func (p *Parser) Parse(raw string) *ParsedReply {
	if idx := strings.Index(raw, p.answerMarker); idx >= 0 {
		return &ParsedReply{
			Kind:      ReplyFinalAnswer,
			Reasoning: strings.TrimSpace(raw[:idx]),
			Answer:    strings.TrimSpace(raw[idx+len(p.answerMarker):]),
			Raw:       raw,
		}
	}

	loc := p.actionRe.FindStringSubmatchIndex(raw)
	if loc == nil {
		if strings.Contains(raw, p.actionStart) || strings.Contains(raw, p.actionEnd) {
			return malformed(raw, fmt.Sprintf(
				"action block not well-formed: expected a JSON object between %s and %s",
				p.actionStart, p.actionEnd,
			))
		}
		return malformed(raw, "no recognized directive")
	}

	reasoning := strings.TrimSpace(raw[:loc[0]])
	payload := raw[loc[2]:loc[3]]

	toolName, args, reason := decodeActionPayload(payload)
	if reason != "" {
		return malformed(raw, reason)
	}

	return &ParsedReply{
		Kind:      ReplyAction,
		Reasoning: reasoning,
		ToolName:  toolName,
		Args:      args,
		Raw:       raw,
	}
}

// decodeActionPayload parses the JSON object inside an action block. The
// contract is strict: exactly the keys "tool" (string) and "args" (object).
// Anything else is reported as a defect, never coerced.
func decodeActionPayload(payload string) (string, map[string]any, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return "", nil, fmt.Sprintf("action block is not valid JSON: %v", err)
	}

	var extra []string
	for key := range fields {
		if key != "tool" && key != "args" {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return "", nil, fmt.Sprintf(
			"action block has unexpected keys: %s", strings.Join(extra, ", "),
		)
	}

	rawTool, ok := fields["tool"]
	if !ok {
		return "", nil, `action block is missing required key "tool"`
	}
	var toolName string
	if err := json.Unmarshal(rawTool, &toolName); err != nil {
		return "", nil, `action block key "tool" must be a string`
	}
	if toolName == "" {
		return "", nil, `action block key "tool" must not be empty`
	}

	rawArgs, ok := fields["args"]
	if !ok {
		return "", nil, `action block is missing required key "args"`
	}
	var args map[string]any
	if err := json.Unmarshal(rawArgs, &args); err != nil {
		return "", nil, `action block key "args" must be a JSON object`
	}

	return toolName, args, ""
}

func malformed(raw, reason string) *ParsedReply {
	return &ParsedReply{
		Kind:   ReplyMalformed,
		Raw:    raw,
		Reason: reason,
	}
}
