package core

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockCall struct {
	Query  string
	Params map[string]interface{}
}

// MockDriver records queries. Results queued per query are returned first,
// then MockResult.
type MockDriver struct {
	mu         sync.Mutex
	Calls      []MockCall
	Queued     map[string][]neo4j.EagerResult
	MockResult neo4j.EagerResult
	Err        error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if q := m.Queued[query]; len(q) > 0 {
		m.Queued[query] = q[1:]
		return q[0], nil
	}
	return m.MockResult, nil
}

func (m *MockDriver) CallsFor(query string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MockCall
	for _, c := range m.Calls {
		if c.Query == query {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func conceptRecord(id, typeID, pid string, names []interface{}, accs []interface{}) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"id", "type", "pid", "names", "accessions"},
		Values: []interface{}{id, typeID, pid, names, accs},
	}
}

func nameValue(name string, preferred bool) interface{} {
	return map[string]interface{}{"name": name, "preferred": preferred}
}

func accValue(accession, source string, ambiguous bool) interface{} {
	return map[string]interface{}{"accession": accession, "source": source, "ambiguous": ambiguous}
}

func writtenResult(n int64) neo4j.EagerResult {
	return neo4j.EagerResult{Records: []*neo4j.Record{{Keys: []string{"written"}, Values: []interface{}{n}}}}
}
