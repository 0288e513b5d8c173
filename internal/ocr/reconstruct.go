package ocr

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// FromTextract converts service blocks into driver blocks.
func FromTextract(in []types.Block) []Block {
	out := make([]Block, 0, len(in))
	for _, b := range in {
		block := Block{
			Kind: BlockKind(b.BlockType),
			ID:   aws.ToString(b.Id),
			Text: aws.ToString(b.Text),
		}
		if b.Confidence != nil {
			c := float64(*b.Confidence)
			block.Confidence = &c
		}
		if b.Page != nil {
			p := int(*b.Page)
			block.Page = &p
		}
		for _, e := range b.EntityTypes {
			block.Entities = append(block.Entities, EntityKind(e))
		}
		for _, r := range b.Relationships {
			block.Relations = append(block.Relations, Relation{
				Kind: RelationKind(r.Type),
				IDs:  r.Ids,
			})
		}
		out = append(out, block)
	}
	return out
}

// Reconstruct rebuilds form fields from KEY_VALUE_SET blocks. Key and value
// text are the space-joined text of their CHILD word blocks. A key without a
// VALUE relationship is dropped. Fields are returned in key block order.
func Reconstruct(blocks []Block) []FormField {
	index := make(map[string]Block, len(blocks))
	for _, b := range blocks {
		index[b.ID] = b
	}

	var fields []FormField
	for _, key := range blocks {
		if key.Kind != BlockKeyValueSet || !key.Is(EntityKey) {
			continue
		}

		valueIDs := key.Related(RelationValue)
		if len(valueIDs) == 0 {
			continue
		}

		value, ok := index[valueIDs[0]]
		if !ok {
			continue
		}

		field := FormField{
			Key:        childText(key, index),
			Value:      childText(value, index),
			Confidence: minConfidence(key.Confidence, value.Confidence),
		}
		if key.Page != nil {
			field.Page = *key.Page
		}

		fields = append(fields, field)
	}
	return fields
}

// Fields collapses form fields into a FieldMap. Later duplicates of a key
// overwrite earlier ones.
func Fields(fields []FormField) FieldMap {
	m := make(FieldMap, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

// Lines joins the text of LINE blocks in emission order.
func Lines(blocks []Block) string {
	var lines []string
	for _, b := range blocks {
		if b.Kind == BlockLine && b.Text != "" {
			lines = append(lines, b.Text)
		}
	}
	return strings.Join(lines, "\n")
}

func childText(b Block, index map[string]Block) string {
	var words []string
	for _, id := range b.Related(RelationChild) {
		child, ok := index[id]
		if !ok || child.Kind != BlockWord {
			continue
		}
		words = append(words, child.Text)
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

func minConfidence(a, b *float64) float64 {
	switch {
	case a != nil && b != nil:
		return min(*a, *b)
	case a != nil:
		return *a
	case b != nil:
		return *b
	default:
		return 0
	}
}
