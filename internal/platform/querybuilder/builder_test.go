package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("pool_players").
		Where(Eq("league_public_id", "ipl"), In("public_id", []any{"p1", "p2"}), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name FROM pool_players WHERE league_public_id = $1 AND public_id IN ($2, $3) AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "ipl" || args[2] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderEmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("*").From("pool_players").Where(In("public_id", nil)).ForUpdate().ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT * FROM pool_players WHERE 1=0 FOR UPDATE" || len(args) != 0 {
		t.Fatalf("unexpected query=%s args=%+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("pool_players").
		Columns("public_id", "points").
		Values("p1", 10.5).
		Values("p2", 3.0).
		Suffix("ON CONFLICT (public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO pool_players (public_id, points) VALUES ($1, $2), ($3, $4) ON CONFLICT (public_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "p1" || args[3] != 3.0 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected row width mismatch error")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("fantasy_squads").
		Set("name", "new").
		SetExpr("version", "version + ?", 1).
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "sq-1"), Expr("version = ?", int64(3))).
		Returning("version", "updated_at").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE fantasy_squads SET name = $1, version = version + $2, updated_at = NOW() WHERE public_id = $3 AND version = $4 RETURNING version, updated_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "new" || args[1] != 1 || args[2] != "sq-1" || args[3] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}
