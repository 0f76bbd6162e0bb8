package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "username").
		From("users").
		Where(Eq("role", "player"), Gt("total_points", 0)).
		OrderBy("total_points DESC", "username ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "SELECT id, username FROM users WHERE role = $1 AND total_points > $2 ORDER BY total_points DESC, username ASC LIMIT 10"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"player", 0}) {
		t.Fatalf("args = %v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("users").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}
	if query != "SELECT id FROM users WHERE 1=0" {
		t.Fatalf("query = %q", query)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertBuilder_WithSuffix(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("drivers").
		Columns("id", "full_name").
		Values("d1", "Max").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "INSERT INTO drivers (id, full_name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"d1", "Max"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Update("bets").
		Set("status", "finished").
		Set("awarded_points", 61).
		Where(Eq("id", "b1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "UPDATE bets SET status = $1, awarded_points = $2 WHERE id = $3"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"finished", 61, "b1"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("users").ToSQL(); err == nil {
		t.Fatal("expected error for delete without where clause")
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ID       string `db:"id"`
		Name     string `db:"full_name"`
		internal int    //nolint:unused // exercises the unexported skip
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModel("drivers", row{ID: "d1", Name: "Max"}, "")
	if err != nil {
		t.Fatalf("InsertModel error: %v", err)
	}
	if query != "INSERT INTO drivers (id, full_name) VALUES ($1, $2)" {
		t.Fatalf("query = %q", query)
	}
	if !reflect.DeepEqual(args, []any{"d1", "Max"}) {
		t.Fatalf("args = %v", args)
	}
}
