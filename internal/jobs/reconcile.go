// Package jobs agrupa las tareas programadas del servicio.
package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/litethinking/gestion-api/internal/domain/repository"
	"github.com/litethinking/gestion-api/pkg/logger"
)

const reconcileBatchSize = 500

// Reconciler verifica cada noche que la cantidad cacheada de cada inventario
// coincida con la suma de deltas de su ledger. Una discrepancia indica que
// alguien escribió stock fuera de la transacción de movimientos; el job la
// reporta pero nunca corrige solo.
type Reconciler struct {
	invRepo repository.InventoryRepository
	movRepo repository.StockMovementRepository
	log     *logger.Logger
	cron    *cron.Cron
}

// NewReconciler construye el job de conciliación.
func NewReconciler(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository, log *logger.Logger) *Reconciler {
	return &Reconciler{
		invRepo: invRepo,
		movRepo: movRepo,
		log:     log,
		cron:    cron.New(),
	}
}

// Start programa la corrida nocturna. schedule es una expresión cron
// estándar de 5 campos, p. ej. "0 3 * * *" para las 3 AM.
func (r *Reconciler) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() {
		if err := r.Run(); err != nil {
			r.log.Error().Err(err).Msg("conciliación de inventario falló")
		}
	}); err != nil {
		return fmt.Errorf("jobs: programar conciliación: %w", err)
	}
	r.cron.Start()
	r.log.Info().Str("schedule", schedule).Msg("job de conciliación programado")
	return nil
}

// Stop detiene el scheduler y espera a que termine la corrida en curso.
func (r *Reconciler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// Run recorre todos los inventarios y compara la cantidad cacheada contra
// la suma de deltas del ledger. Devuelve error solo en fallos de lectura;
// las discrepancias se loguean con el detalle de cada inventario.
func (r *Reconciler) Run() error {
	checked, drifted := 0, 0
	offset := 0
	for {
		rows, err := r.invRepo.ListAll(reconcileBatchSize, offset)
		if err != nil {
			return fmt.Errorf("jobs: listar inventarios: %w", err)
		}
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			sum, err := r.movRepo.SumDeltas(row.Inventory.ID)
			if err != nil {
				return fmt.Errorf("jobs: sumar deltas de %s: %w", row.Inventory.ID, err)
			}
			checked++
			if sum != row.Inventory.Quantity {
				drifted++
				r.log.Error().
					Str("inventory_id", row.Inventory.ID).
					Str("product_code", row.ProductCode).
					Int("cached_quantity", row.Inventory.Quantity).
					Int("ledger_sum", sum).
					Msg("discrepancia entre ledger y cantidad cacheada")
			}
		}
		offset += len(rows)
	}
	r.log.Info().Int("checked", checked).Int("drifted", drifted).Msg("conciliación de inventario completada")
	if drifted > 0 {
		return fmt.Errorf("jobs: %d inventarios con discrepancia", drifted)
	}
	return nil
}
