package driver

var IndexQueries = []string{
	"CREATE INDEX ON :Concept(id);",
	"CREATE INDEX ON :Concept(type);",
	"CREATE INDEX ON :ConceptName(name);",
	"CREATE INDEX ON :Accession(accession);",
}

const (
	// SaveConceptQuery replaces the names and accessions of a concept.
	SaveConceptQuery = `
		MERGE (c:Concept {id: $id})
		SET c.type = $type,
			c.pid = $pid
		WITH c
		OPTIONAL MATCH (c)-[:HAS_NAME|HAS_ACCESSION]->(old)
		DETACH DELETE old
		WITH DISTINCT c
		FOREACH (n IN $names |
			CREATE (c)-[:HAS_NAME]->(:ConceptName {name: n.name, preferred: n.preferred}))
		FOREACH (a IN $accessions |
			CREATE (c)-[:HAS_ACCESSION]->(:Accession {accession: a.accession, ambiguous: a.ambiguous, source: a.source}))
		RETURN c.id AS id
	`

	GetConceptQuery = `
		MATCH (c:Concept {id: $id})
		OPTIONAL MATCH (c)-[:HAS_NAME]->(n:ConceptName)
		WITH c, collect({name: n.name, preferred: n.preferred}) AS names
		OPTIONAL MATCH (c)-[:HAS_ACCESSION]->(a:Accession)
		RETURN c.id AS id, c.type AS type, c.pid AS pid, names,
			collect({accession: a.accession, ambiguous: a.ambiguous, source: a.source}) AS accessions
	`

	// ListConceptsQuery pages through concepts ordered by id; an empty $type
	// matches every concept.
	ListConceptsQuery = `
		MATCH (c:Concept)
		WHERE $type = "" OR c.type = $type
		WITH c ORDER BY c.id SKIP $skip LIMIT $limit
		OPTIONAL MATCH (c)-[:HAS_NAME]->(n:ConceptName)
		WITH c, collect({name: n.name, preferred: n.preferred}) AS names
		OPTIONAL MATCH (c)-[:HAS_ACCESSION]->(a:Accession)
		WITH c, names, collect({accession: a.accession, ambiguous: a.ambiguous, source: a.source}) AS accessions
		RETURN c.id AS id, c.type AS type, c.pid AS pid, names, accessions
		ORDER BY id
	`

	// SaveConceptLabelQuery stores the label of a single concept.
	SaveConceptLabelQuery = `
		MATCH (c:Concept {id: $id})
		SET c.label = $label,
			c.label_stage = $stage,
			c.label_accession = $accession,
			c.label_run = $run_id,
			c.labelled_at = $labelled_at
		RETURN c.id AS id
	`

	// SaveConceptLabelsQuery is the batched form of SaveConceptLabelQuery used
	// by relabel runs.
	SaveConceptLabelsQuery = `
		UNWIND $labels AS l
		MATCH (c:Concept {id: l.id})
		SET c.label = l.label,
			c.label_stage = l.stage,
			c.label_accession = l.accession,
			c.label_run = $run_id,
			c.labelled_at = $labelled_at
		RETURN count(c) AS written
	`

	DeleteConceptQuery = `
		MATCH (c:Concept {id: $id})
		OPTIONAL MATCH (c)-[:HAS_NAME|HAS_ACCESSION]->(x)
		DETACH DELETE x, c
	`
)
