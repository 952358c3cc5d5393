package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	database "gitlab.com/tradeforge/multistrat/database/models"
	"gitlab.com/tradeforge/multistrat/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DBService persists positions to MySQL through gorm. It implements
// interfaces.TradeRepository.
type DBService struct {
	DB *gorm.DB
}

func NewDBService(dbHost string, dbPort string, dbName string, dbUser string, dbPass string) (*DBService, error) {
	dsn := dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?charset=utf8mb4&parseTime=True&loc=Local"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	dbs := &DBService{DB: db}

	if err := dbs.DB.AutoMigrate(&database.Position{}); err != nil {
		return nil, err
	}
	return dbs, nil
}

// Save inserts a new position or updates an existing one. The domain
// model's ID is backfilled on first insert so later saves update the
// same row.
func (dbs *DBService) Save(position *models.Position) error {
	record := toRecord(position)
	if err := dbs.DB.Save(record).Error; err != nil {
		return fmt.Errorf("save position: %w", err)
	}
	position.ID = record.ID
	return nil
}

func (dbs *DBService) FindOpen() ([]models.Position, error) {
	return dbs.find(true)
}

func (dbs *DBService) FindClosed() ([]models.Position, error) {
	return dbs.find(false)
}

func (dbs *DBService) find(open bool) ([]models.Position, error) {
	var records []database.Position
	if err := dbs.DB.Where("open = ?", open).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find positions: %w", err)
	}

	positions := make([]models.Position, 0, len(records))
	for i := range records {
		position, err := fromRecord(&records[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", records[i].ID, err)
		}
		positions = append(positions, position)
	}
	return positions, nil
}

func toRecord(position *models.Position) *database.Position {
	record := &database.Position{
		Symbol:     position.Symbol,
		Strategy:   string(position.Strategy),
		EntryPrice: position.EntryPrice.String(),
		Quantity:   position.Quantity.String(),
		StopLoss:   position.StopLoss.String(),
		TakeProfit: stringPtr(position.TakeProfit),
		EntryTime:  position.EntryTime,
		ExitTime:   position.ExitTime,
		ExitPrice:  stringPtr(position.ExitPrice),
		Profit:     stringPtr(position.Profit),
		Open:       position.Open,
	}
	record.ID = position.ID
	return record
}

func fromRecord(record *database.Position) (models.Position, error) {
	entryPrice, err := decimal.NewFromString(record.EntryPrice)
	if err != nil {
		return models.Position{}, err
	}
	quantity, err := decimal.NewFromString(record.Quantity)
	if err != nil {
		return models.Position{}, err
	}
	stopLoss, err := decimal.NewFromString(record.StopLoss)
	if err != nil {
		return models.Position{}, err
	}
	takeProfit, err := decimalPtr(record.TakeProfit)
	if err != nil {
		return models.Position{}, err
	}
	exitPrice, err := decimalPtr(record.ExitPrice)
	if err != nil {
		return models.Position{}, err
	}
	profit, err := decimalPtr(record.Profit)
	if err != nil {
		return models.Position{}, err
	}

	return models.Position{
		ID:         record.ID,
		Symbol:     record.Symbol,
		Strategy:   models.StrategyName(record.Strategy),
		EntryPrice: entryPrice,
		Quantity:   quantity,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		EntryTime:  record.EntryTime,
		ExitTime:   record.ExitTime,
		ExitPrice:  exitPrice,
		Profit:     profit,
		Open:       record.Open,
	}, nil
}

func stringPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func decimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
