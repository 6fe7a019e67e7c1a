package jsvalidation

// Size rules read differently for numbers, files, arrays and strings.
var sizeRules = map[string]bool{
	"between": true,
	"gt":      true,
	"gte":     true,
	"lt":      true,
	"lte":     true,
	"max":     true,
	"min":     true,
	"size":    true,
}

// MessageParser resolves the message the server would show for a rule.
type MessageParser struct {
	cell *validatorCell
}

func newMessageParser(cell *validatorCell) *MessageParser {
	return &MessageParser{cell: cell}
}

// Message returns the host message for rule on attribute.
func (p *MessageParser) Message(attribute, rule string, params []string) string {
	d := p.cell.load()
	variant := ""
	if sizeRules[rule] {
		variant = p.variant(d, attribute)
	}
	return d.Message(attribute, rule, variant, params)
}

func (p *MessageParser) variant(d *DelegatedValidator, attribute string) string {
	switch {
	case d.HasRule(attribute, "numeric", "integer", "decimal"):
		return "numeric"
	case d.HasRule(attribute, "file", "image", "mimes", "mimetypes"):
		return "file"
	case d.HasRule(attribute, "array"):
		return "array"
	default:
		return "string"
	}
}
