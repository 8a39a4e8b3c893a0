package model

// IndustryPeriodVacancy is one pre-aggregated (industry, period) fact, where
// industry is the posting's primary category or "Unknown".
type IndustryPeriodVacancy struct {
	Id        int    `gorm:"primaryKey"`
	Industry  string `gorm:"size:255;index"`
	Period    string `gorm:"size:32;index"`
	Vacancies int64
	Postings  int64
}

func (IndustryPeriodVacancy) TableName() string { return "industry_period_vacancies" }

func InsertIndustryPeriodVacancies(rows []IndustryPeriodVacancy) error {
	if len(rows) == 0 {
		return nil
	}
	return storeErr(DB.CreateInBatches(rows, 500).Error)
}

// IndustryPeriodRow is one cell of the industry×period pivot.
type IndustryPeriodRow struct {
	Industry  string
	Period    string
	Vacancies int64
	Postings  int64
}

func LoadIndustryPivot() ([]IndustryPeriodRow, error) {
	var rows []IndustryPeriodRow
	err := DB.Table("industry_period_vacancies").
		Select("industry, period, sum(vacancies) as vacancies, sum(postings) as postings").
		Group("industry, period").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return rows, nil
}

func TopIndustriesByVacancies(n int) ([]string, error) {
	var names []string
	err := DB.Table("industry_period_vacancies").
		Select("industry").
		Group("industry").
		Order("sum(vacancies) desc").
		Limit(n).
		Scan(&names).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return names, nil
}

// ClearAggregates empties the aggregate tables (but keeps companies, whose
// unique names stay valid). Used by builddb --clear for a clean rebuild.
func ClearAggregates() error {
	if err := DB.Where("1 = 1").Delete(&CompanyPeriodVacancy{}).Error; err != nil {
		return storeErr(err)
	}
	if err := DB.Where("1 = 1").Delete(&IndustryPeriodVacancy{}).Error; err != nil {
		return storeErr(err)
	}
	return nil
}
