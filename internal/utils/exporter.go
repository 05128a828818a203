package utils

import (
	"fmt"

	"github.com/code-ex0/bibliotheca/internal/models"
)

func ExportData(logs []models.AuditLog) error {
	for _, entry := range logs {
		//change with actual calls
		fmt.Println(entry.Timestamp, entry.Entity, entry.Action)
	}
	return nil
}
