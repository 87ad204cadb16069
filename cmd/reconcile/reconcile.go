package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/services"
)

// reconcilerSession is the admin identity recorded on approvals made from a statement
var reconcilerSession = services.Session{UserID: "reconcile", Role: models.RoleAdmin}

// Summary counts the outcome of each statement row
type Summary struct {
	Approved   int
	Unmatched  int
	Duplicates int
	Skipped    int
}

// reconcile reads statement rows and approves the oldest pending recharge
// matching each one. Rows whose reference was already reconciled are counted
// as duplicates, so a statement can be run again safely. Malformed rows and
// rows with no match are logged and skipped; a store failure stops the run.
func reconcile(ctx context.Context, settlement services.SettlementService, r io.Reader) (Summary, error) {
	var summary Summary

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("failed to parse statement: %w", err)
		}

		if len(record) < 3 {
			log.Printf("Warning: Row %d has less than 3 fields, skipping", line)
			summary.Skipped++
			continue
		}
		momoNumber := strings.TrimSpace(record[0])
		reference := strings.TrimSpace(record[2])
		amount, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(record[1]), ",", ""), 10, 64)
		if err != nil {
			// Header row
			if line == 1 {
				continue
			}
			log.Printf("Warning: Row %d has invalid amount %q, skipping", line, record[1])
			summary.Skipped++
			continue
		}

		recharge, err := settlement.ReconcileRecharge(ctx, reconcilerSession, momoNumber, amount, reference)
		if err != nil {
			var validation *services.ValidationError
			switch {
			case errors.Is(err, services.ErrAlreadyReconciled):
				log.Printf("Row %d (%s): reference already reconciled, skipping", line, reference)
				summary.Duplicates++
				continue
			case errors.Is(err, services.ErrRequestNotFound), errors.Is(err, services.ErrAlreadySettled), errors.Is(err, services.ErrUserNotFound):
				log.Printf("Row %d (%s): no pending recharge of %d from %s", line, reference, amount, momoNumber)
				summary.Unmatched++
				continue
			case errors.As(err, &validation):
				log.Printf("Warning: Row %d: %v, skipping", line, err)
				summary.Skipped++
				continue
			}
			return summary, fmt.Errorf("row %d: %w", line, err)
		}
		log.Printf("Row %d (%s): approved recharge %s for user %s", line, reference, recharge.ID, recharge.UserID)
		summary.Approved++
	}
	return summary, nil
}
