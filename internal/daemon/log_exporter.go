package daemon

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/code-ex0/bibliotheca/internal/models"
	"github.com/code-ex0/bibliotheca/internal/utils"
)

// LogExporter periodically ships unexported audit entries and marks them
// as exported.
type LogExporter struct {
	Coll *mongo.Collection
}

func (l *LogExporter) InitLogExporter() {
	go func() {
		for {
			res, _ := l.Coll.Find(context.Background(), bson.M{"exported": false})

			var logs []models.AuditLog
			_ = res.All(context.Background(), &logs)

			if len(logs) > 0 {
				_ = utils.ExportData(logs)

				ids := make([]primitive.ObjectID, 0, len(logs))
				for _, entry := range logs {
					ids = append(ids, entry.ID)
				}

				l.Coll.UpdateMany(context.Background(),
					bson.M{"_id": bson.M{"$in": ids}},
					bson.M{"$set": bson.M{"exported": true}})
			}
			time.Sleep(30 * time.Second)
		}
	}()
}
