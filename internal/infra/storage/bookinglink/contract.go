package bookinglink

import "github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"

// DBExecutor интерфейс выполнения запросов (*sql.DB, *sql.Tx, *dbmetrics.DB)
type DBExecutor = dbmetrics.DBExecutor
