package repository

import (
	"github.com/ncobase/taskapi/data/schema"
	"github.com/ncobase/taskapi/structs"

	"entgo.io/ent/dialect/sql"
)

// taskFilter builds the WHERE clause of a listing. The owner clause is
// always present.
func taskFilter(params *structs.ListTaskParams) *sql.Predicate {
	preds := []*sql.Predicate{sql.EQ(schema.TaskFieldUserID, params.UserID)}

	if params.Status != "" {
		preds = append(preds, sql.EQ(schema.TaskFieldStatus, params.Status))
	}
	if params.Priority != "" {
		preds = append(preds, sql.EQ(schema.TaskFieldPriority, params.Priority))
	}
	if params.Search != "" {
		preds = append(preds, sql.Or(
			sql.Contains(schema.TaskFieldTitle, params.Search),
			sql.Contains(schema.TaskFieldDescription, params.Search),
		))
	}

	return sql.And(preds...)
}

// taskOrder returns the ORDER BY terms; id breaks created_at ties so pages
// never overlap.
func taskOrder(sort string) []string {
	if sort == structs.SortOldest {
		return []string{sql.Asc(schema.FieldCreatedAt), sql.Asc(schema.FieldID)}
	}
	return []string{sql.Desc(schema.FieldCreatedAt), sql.Desc(schema.FieldID)}
}

// buildListQueries returns the page selector and the matching count selector.
// params must already be normalized.
func buildListQueries(b *sql.DialectBuilder, params *structs.ListTaskParams) (page, count *sql.Selector) {
	page = b.Select(taskColumns...).
		From(b.Table(schema.TasksTableName)).
		Where(taskFilter(params)).
		OrderBy(taskOrder(params.Sort)...).
		Limit(params.Limit).
		Offset(params.Offset())

	count = b.Select(sql.Count("*")).
		From(b.Table(schema.TasksTableName)).
		Where(taskFilter(params))

	return page, count
}
