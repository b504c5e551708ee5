package engine

import "fmt"

// DBCmd is a database statement id. Each storage keeps its own range of ids.
type DBCmd int

// Query keeps dialect variants of a statement. Empty Postgres variant means the sqlite text works for both.
type Query struct {
	Sqlite   string
	Postgres string
}

// QueryMap keeps statements by command
type QueryMap struct {
	queries map[DBCmd]Query
}

// NewQueryMap makes an empty QueryMap
func NewQueryMap() *QueryMap {
	return &QueryMap{queries: map[DBCmd]Query{}}
}

// Add sets dialect variants for the command, replacing the previous ones
func (q *QueryMap) Add(cmd DBCmd, query Query) *QueryMap {
	q.queries[cmd] = query
	return q
}

// AddSame sets a statement shared by all dialects
func (q *QueryMap) AddSame(cmd DBCmd, query string) *QueryMap {
	return q.Add(cmd, Query{Sqlite: query})
}

// Pick returns the statement text for the database type, as written, without placeholder conversion
func (q *QueryMap) Pick(dbType Type, cmd DBCmd) (string, error) {
	query, ok := q.queries[cmd]
	if !ok {
		return "", fmt.Errorf("no query for command %d", cmd)
	}
	switch dbType {
	case Sqlite:
		return query.Sqlite, nil
	case Postgres:
		if query.Postgres == "" {
			return query.Sqlite, nil
		}
		return query.Postgres, nil
	}
	return "", fmt.Errorf("unsupported database type %q for command %d", dbType, cmd)
}

// Statement returns the statement for the engine's dialect, ready to execute
func (e *SQL) Statement(qm *QueryMap, cmd DBCmd) (string, error) {
	query, err := qm.Pick(e.dbType, cmd)
	if err != nil {
		return "", err
	}
	return e.Adopt(query), nil
}
