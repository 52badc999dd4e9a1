package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type cascadeStep struct {
	table string
	query string
}

// Deletion plans run children first, all in one transaction. The last step deletes the entity itself.
var cascadePlans = map[string][]cascadeStep{
	"orders": {
		{table: "tickets", query: `DELETE FROM tickets WHERE order_id = $1`},
		{table: "orders", query: `DELETE FROM orders WHERE id = $1`},
	},
	"flights": {
		{table: "tickets", query: `DELETE FROM tickets WHERE flight_id = $1`},
		{table: "flight_crews", query: `DELETE FROM flight_crews WHERE flight_id = $1`},
		{table: "flights", query: `DELETE FROM flights WHERE id = $1`},
	},
	"routes": {
		{table: "tickets", query: `DELETE FROM tickets WHERE flight_id IN (SELECT id FROM flights WHERE route_id = $1)`},
		{table: "flight_crews", query: `DELETE FROM flight_crews WHERE flight_id IN (SELECT id FROM flights WHERE route_id = $1)`},
		{table: "flights", query: `DELETE FROM flights WHERE route_id = $1`},
		{table: "routes", query: `DELETE FROM routes WHERE id = $1`},
	},
	"airplanes": {
		{table: "tickets", query: `DELETE FROM tickets WHERE flight_id IN (SELECT id FROM flights WHERE airplane_id = $1)`},
		{table: "flight_crews", query: `DELETE FROM flight_crews WHERE flight_id IN (SELECT id FROM flights WHERE airplane_id = $1)`},
		{table: "flights", query: `DELETE FROM flights WHERE airplane_id = $1`},
		{table: "airplanes", query: `DELETE FROM airplanes WHERE id = $1`},
	},
	"airplane_types": {
		{table: "tickets", query: `DELETE FROM tickets WHERE flight_id IN (SELECT f.id FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE a.airplane_type_id = $1)`},
		{table: "flight_crews", query: `DELETE FROM flight_crews WHERE flight_id IN (SELECT f.id FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE a.airplane_type_id = $1)`},
		{table: "flights", query: `DELETE FROM flights WHERE airplane_id IN (SELECT id FROM airplanes WHERE airplane_type_id = $1)`},
		{table: "airplanes", query: `DELETE FROM airplanes WHERE airplane_type_id = $1`},
		{table: "airplane_types", query: `DELETE FROM airplane_types WHERE id = $1`},
	},
	"airports": {
		{table: "tickets", query: `DELETE FROM tickets WHERE flight_id IN (SELECT f.id FROM flights f JOIN routes r ON r.id = f.route_id WHERE r.source_id = $1 OR r.destination_id = $1)`},
		{table: "flight_crews", query: `DELETE FROM flight_crews WHERE flight_id IN (SELECT f.id FROM flights f JOIN routes r ON r.id = f.route_id WHERE r.source_id = $1 OR r.destination_id = $1)`},
		{table: "flights", query: `DELETE FROM flights WHERE route_id IN (SELECT id FROM routes WHERE source_id = $1 OR destination_id = $1)`},
		{table: "routes", query: `DELETE FROM routes WHERE source_id = $1 OR destination_id = $1`},
		{table: "airports", query: `DELETE FROM airports WHERE id = $1`},
	},
	"crews": {
		{table: "flight_crews", query: `DELETE FROM flight_crews WHERE crew_id = $1`},
		{table: "crews", query: `DELETE FROM crews WHERE id = $1`},
	},
}

// cascadeDelete removes the entity and everything that depends on it, or nothing at all.
func cascadeDelete(ctx context.Context, db *pgxpool.Pool, entity string, id int64) error {
	plan, ok := cascadePlans[entity]
	if !ok {
		return fmt.Errorf("no deletion plan for %s", entity)
	}

	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		return runCascade(ctx, tx, plan, id)
	})
}

func runCascade(ctx context.Context, q querier, plan []cascadeStep, id int64) error {
	for i, step := range plan {
		tag, err := q.Exec(ctx, step.query, id)
		if err != nil {
			return fmt.Errorf("delete from %s: %w", step.table, err)
		}
		if i == len(plan)-1 && tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}
