package common

import (
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/knetlabel/internal/core/model"
)

// RecordString returns the string value of key, "" when missing or null.
func RecordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func RecordInt(rec *neo4j.Record, key string) int64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	n, _ := v.(int64)
	return n
}

// ConceptFromRecord decodes a row shaped like driver.GetConceptQuery.
// OPTIONAL MATCH yields maps of nulls for concepts without names or
// accessions; those entries are skipped.
func ConceptFromRecord(rec *neo4j.Record) (model.Concept, error) {
	c := model.Concept{
		ID:     RecordString(rec, "id"),
		TypeID: RecordString(rec, "type"),
		PID:    RecordString(rec, "pid"),
	}
	if c.ID == "" {
		return model.Concept{}, fmt.Errorf("concept record without id (keys: %s)", strings.Join(rec.Keys, ", "))
	}

	names, err := recordMaps(rec, "names")
	if err != nil {
		return model.Concept{}, err
	}
	for _, m := range names {
		text, ok := m["name"].(string)
		if !ok {
			continue
		}
		preferred, _ := m["preferred"].(bool)
		c.Names = append(c.Names, model.ConceptName{Name: text, Preferred: preferred})
	}

	accs, err := recordMaps(rec, "accessions")
	if err != nil {
		return model.Concept{}, err
	}
	for _, m := range accs {
		text, ok := m["accession"].(string)
		if !ok {
			continue
		}
		ambiguous, _ := m["ambiguous"].(bool)
		source, _ := m["source"].(string)
		c.Accessions = append(c.Accessions, model.ConceptAccession{Accession: text, Ambiguous: ambiguous, Source: source})
	}
	return c, nil
}

func recordMaps(rec *neo4j.Record, key string) ([]map[string]interface{}, error) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q: expected a list, got %T", key, v)
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q: expected a list of maps, got %T", key, item)
		}
		out = append(out, m)
	}
	return out, nil
}

// ConceptParams turns a concept into parameters for driver.SaveConceptQuery.
func ConceptParams(c model.Concept) map[string]interface{} {
	names := make([]map[string]interface{}, 0, len(c.Names))
	for _, n := range c.Names {
		names = append(names, map[string]interface{}{"name": n.Name, "preferred": n.Preferred})
	}
	accs := make([]map[string]interface{}, 0, len(c.Accessions))
	for _, a := range c.Accessions {
		accs = append(accs, map[string]interface{}{"accession": a.Accession, "ambiguous": a.Ambiguous, "source": a.Source})
	}
	return map[string]interface{}{
		"id":         c.ID,
		"type":       c.TypeID,
		"pid":        c.PID,
		"names":      names,
		"accessions": accs,
	}
}
