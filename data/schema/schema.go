// Package schema describes the relational layout of users and tasks for the
// ent migration engine.
package schema

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names
const (
	UsersTableName = "users"
	TasksTableName = "tasks"
)

// Column names shared by both tables
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// User columns
const (
	UserFieldName         = "name"
	UserFieldEmail        = "email"
	UserFieldPasswordHash = "password_hash"
)

// Task columns
const (
	TaskFieldTitle       = "title"
	TaskFieldDescription = "description"
	TaskFieldStatus      = "status"
	TaskFieldPriority    = "priority"
	TaskFieldUserID      = "user_id"
)

// textSize is the size ent uses for unbounded text columns.
const textSize = 2147483647

var (
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: FieldID, Type: field.TypeString, Unique: true, Size: 16},
		{Name: UserFieldName, Type: field.TypeString, Size: 100},
		{Name: UserFieldEmail, Type: field.TypeString, Unique: true, Size: 255},
		{Name: UserFieldPasswordHash, Type: field.TypeString, Size: 255},
		{Name: FieldCreatedAt, Type: field.TypeTime},
		{Name: FieldUpdatedAt, Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       UsersTableName,
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}

	// TasksColumns holds the columns for the "tasks" table.
	TasksColumns = []*schema.Column{
		{Name: FieldID, Type: field.TypeString, Unique: true, Size: 16},
		{Name: TaskFieldTitle, Type: field.TypeString, Size: 255},
		{Name: TaskFieldDescription, Type: field.TypeString, Nullable: true, Size: textSize},
		{Name: TaskFieldStatus, Type: field.TypeEnum, Enums: []string{"pending", "in-progress", "completed"}, Default: "pending"},
		{Name: TaskFieldPriority, Type: field.TypeEnum, Enums: []string{"low", "medium", "high"}, Default: "medium"},
		{Name: FieldCreatedAt, Type: field.TypeTime},
		{Name: FieldUpdatedAt, Type: field.TypeTime},
		{Name: TaskFieldUserID, Type: field.TypeString, Size: 16},
	}
	// TasksTable holds the schema information for the "tasks" table.
	TasksTable = &schema.Table{
		Name:       TasksTableName,
		Columns:    TasksColumns,
		PrimaryKey: []*schema.Column{TasksColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "tasks_users_tasks",
				Columns:    []*schema.Column{TasksColumns[7]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "task_user_id_created_at",
				Unique:  false,
				Columns: []*schema.Column{TasksColumns[7], TasksColumns[5]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		UsersTable,
		TasksTable,
	}
)

func init() {
	TasksTable.ForeignKeys[0].RefTable = UsersTable
}
