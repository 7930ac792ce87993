package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	gormSpanKey      = "campuscook:gorm:span"
	gormStartTimeKey = "campuscook:gorm:start"
)

// RegisterGORMCallbacks times every statement and, when detailed tracing is
// enabled, opens a span around it.
func RegisterGORMCallbacks(db *gorm.DB, cfg *Config) error {
	if cfg == nil {
		return nil
	}
	tracer := cfg.Tracer()
	metrics := cfg.Metrics()
	traced := cfg.EnableDetailedDBTracing

	before := func(spanName string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			startStatement(db, tracer, spanName, traced)
		}
	}
	after := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			endStatement(db, tracer, metrics, operation)
		}
	}

	if err := db.Callback().Query().Before("gorm:query").Register("campuscook:before_query", before("db.query")); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("campuscook:after_query", after("SELECT")); err != nil {
		return err
	}

	if err := db.Callback().Create().Before("gorm:create").Register("campuscook:before_create", before("db.create")); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("campuscook:after_create", after("INSERT")); err != nil {
		return err
	}

	if err := db.Callback().Update().Before("gorm:update").Register("campuscook:before_update", before("db.update")); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("campuscook:after_update", after("UPDATE")); err != nil {
		return err
	}

	if err := db.Callback().Delete().Before("gorm:delete").Register("campuscook:before_delete", before("db.delete")); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("campuscook:after_delete", after("DELETE")); err != nil {
		return err
	}

	if err := db.Callback().Row().Before("gorm:row").Register("campuscook:before_row", before("db.row")); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("campuscook:after_row", after("ROW")); err != nil {
		return err
	}

	if err := db.Callback().Raw().Before("gorm:raw").Register("campuscook:before_raw", before("db.raw")); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("campuscook:after_raw", after("RAW")); err != nil {
		return err
	}

	return nil
}

func startStatement(db *gorm.DB, tracer *Tracer, spanName string, traced bool) {
	db.InstanceSet(gormStartTimeKey, time.Now())
	if !traced {
		return
	}

	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracer.StartSpan(ctx, spanName, attribute.String("db.system", db.Dialector.Name()))
	db.Statement.Context = ctx
	db.InstanceSet(gormSpanKey, span)
}

func endStatement(db *gorm.DB, tracer *Tracer, metrics *Metrics, operation string) {
	if startVal, ok := db.InstanceGet(gormStartTimeKey); ok {
		if start, ok := startVal.(time.Time); ok {
			ctx := db.Statement.Context
			if ctx == nil {
				ctx = context.Background()
			}
			metrics.RecordDBQuery(ctx, operation, time.Since(start))
		}
	}

	spanVal, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, ok := spanVal.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))
	if db.Error != nil {
		tracer.RecordError(span, db.Error)
	}
}
