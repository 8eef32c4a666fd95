package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the tables used by the repositories.  Statements are
// idempotent so Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clientes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		nombre VARCHAR(255) NOT NULL DEFAULT '',
		numero_visitas INT NOT NULL DEFAULT 0,
		fecha_nacimiento DATE NULL,
		email VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS karts (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		codigo VARCHAR(64) NOT NULL DEFAULT '',
		estado VARCHAR(64) NOT NULL DEFAULT ''
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservas (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		numero_vueltas INT NOT NULL,
		fecha_reserva DATE NULL,
		hora_reserva TIME NULL,
		precio_base INT NOT NULL DEFAULT 0,
		precio_final INT NOT NULL DEFAULT 0,
		duracion_total INT NOT NULL DEFAULT 0,
		descuento_por_personas INT NOT NULL DEFAULT 0,
		descuento_por_visitas INT NOT NULL DEFAULT 0,
		descuento_por_cumpleanos INT NOT NULL DEFAULT 0,
		descuento_total INT NOT NULL DEFAULT 0,
		numero_personas INT NOT NULL DEFAULT 0,
		KEY idx_reservas_fecha (fecha_reserva)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reserva_clientes (
		reserva_id BIGINT UNSIGNED NOT NULL,
		cliente_id BIGINT UNSIGNED NOT NULL,
		posicion INT NOT NULL,
		PRIMARY KEY (reserva_id, posicion),
		CONSTRAINT fk_rc_reserva FOREIGN KEY (reserva_id) REFERENCES reservas(id) ON DELETE CASCADE,
		CONSTRAINT fk_rc_cliente FOREIGN KEY (cliente_id) REFERENCES clientes(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reserva_karts (
		reserva_id BIGINT UNSIGNED NOT NULL,
		kart_id BIGINT UNSIGNED NOT NULL,
		posicion INT NOT NULL,
		PRIMARY KEY (reserva_id, posicion),
		CONSTRAINT fk_rk_reserva FOREIGN KEY (reserva_id) REFERENCES reservas(id) ON DELETE CASCADE,
		CONSTRAINT fk_rk_kart FOREIGN KEY (kart_id) REFERENCES karts(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
