package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS schools (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		cnpj VARCHAR(32) NOT NULL,
		director VARCHAR(255),
		address TEXT,
		phone VARCHAR(32)
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		school_id UUID NOT NULL REFERENCES schools(id),
		supplier_name VARCHAR(255) NOT NULL,
		supplier_doc VARCHAR(32) NOT NULL,
		description TEXT,
		start_at DATE NOT NULL,
		end_at DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contract_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		description VARCHAR(255) NOT NULL,
		unit VARCHAR(32) NOT NULL,
		unit_price NUMERIC(18,2) NOT NULL,
		contracted_quantity NUMERIC(18,3) NOT NULL,
		acquired_quantity NUMERIC(18,3) NOT NULL DEFAULT 0,
		CONSTRAINT chk_contract_items_balance
			CHECK (acquired_quantity >= 0 AND acquired_quantity <= contracted_quantity)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_items_contract_id ON contract_items (contract_id);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_number VARCHAR(64) NOT NULL,
		contract_id UUID NOT NULL REFERENCES contracts(id),
		issue_date DATE NOT NULL,
		delivery_date DATE NOT NULL,
		total_value NUMERIC(18,2) NOT NULL,
		observations TEXT,
		created_by_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_contract_number ON orders (contract_id, order_number);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_contract_id ON orders (contract_id);`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		contract_item_id UUID NOT NULL REFERENCES contract_items(id),
		description VARCHAR(255) NOT NULL,
		unit VARCHAR(32) NOT NULL,
		quantity NUMERIC(18,3) NOT NULL,
		unit_price NUMERIC(18,2) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id);`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_contract_item_id ON order_items (contract_item_id);`,
	`CREATE TABLE IF NOT EXISTS attendance_sessions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		school_id UUID NOT NULL REFERENCES schools(id),
		class_name VARCHAR(128) NOT NULL,
		subject VARCHAR(128) NOT NULL,
		teacher_id UUID NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_sessions_school_date ON attendance_sessions (school_id, date);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'attendance_status') THEN
			CREATE TYPE attendance_status AS ENUM ('PRESENT', 'ABSENT', 'JUSTIFIED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		session_id UUID NOT NULL REFERENCES attendance_sessions(id) ON DELETE CASCADE,
		student_name VARCHAR(255) NOT NULL,
		status attendance_status NOT NULL,
		note TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_records_session_id ON attendance_records (session_id);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'mediation_status') THEN
			CREATE TYPE mediation_status AS ENUM ('OPEN', 'IN_PROGRESS', 'RESOLVED', 'ARCHIVED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS mediation_cases (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		school_id UUID NOT NULL REFERENCES schools(id),
		student_name VARCHAR(255) NOT NULL,
		reporter VARCHAR(255) NOT NULL,
		category VARCHAR(64) NOT NULL,
		summary TEXT NOT NULL,
		status mediation_status NOT NULL DEFAULT 'OPEN',
		assignee_id UUID,
		opened_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		closed_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_mediation_cases_school_status ON mediation_cases (school_id, status);`,
	`CREATE TABLE IF NOT EXISTS case_notes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		case_id UUID NOT NULL REFERENCES mediation_cases(id) ON DELETE CASCADE,
		author_id UUID NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_case_notes_case_id ON case_notes (case_id);`,
	`CREATE TABLE IF NOT EXISTS campaign_events (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		school_id UUID NOT NULL REFERENCES schools(id),
		title VARCHAR(255) NOT NULL,
		description TEXT,
		category VARCHAR(64) NOT NULL,
		start_at DATE NOT NULL,
		end_at DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_campaign_events_school_period ON campaign_events (school_id, start_at, end_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
