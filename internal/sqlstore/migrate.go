package sqlstore

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate applies the portfolio schema using Gorm's AutoMigrate and logs progress.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "sqlstore.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying portfolio schema")
	}

	models := []any{
		&ProfileRecord{},
		&SkillRecord{},
		&JourneyRecord{},
		&ProjectRecord{},
		&AdminRecord{},
	}
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("portfolio schema migration failed")
		}
		return eris.Wrap(err, "auto migrating portfolio schema")
	}

	if logger != nil {
		logger.WithFields(logFields).Info("portfolio schema migration complete")
	}

	return nil
}
