package model

// Company gives every distinct company name seen in the raw source a stable
// id. The unique index is what deduplicates names across build batches.
type Company struct {
	Id   int    `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:512"`
}

func (Company) TableName() string { return "companies" }

// CompanyPeriodVacancy is one pre-aggregated (company, period) fact. Year,
// month and ISO week are denormalized from the period start for cheap
// filtering. Rows are additive: rebuilding without clearing duplicates them.
type CompanyPeriodVacancy struct {
	Id        int    `gorm:"primaryKey"`
	CompanyId int    `gorm:"index"`
	Period    string `gorm:"size:32;index"`
	Year      int
	Month     int
	Week      int
	Vacancies int64
	Postings  int64
}

func (CompanyPeriodVacancy) TableName() string { return "company_period_vacancies" }

// EnsureCompany resolves a name to its id, inserting if absent.
func EnsureCompany(name string) (int, error) {
	var c Company
	err := DB.Where(&Company{Name: name}).FirstOrCreate(&c, Company{Name: name}).Error
	if err != nil {
		return 0, storeErr(err)
	}
	return c.Id, nil
}

func InsertCompanyPeriodVacancies(rows []CompanyPeriodVacancy) error {
	if len(rows) == 0 {
		return nil
	}
	return storeErr(DB.CreateInBatches(rows, 500).Error)
}

// CompanyPeriodRow is one cell of the company×period pivot, summed over any
// duplicate aggregate rows.
type CompanyPeriodRow struct {
	Company   string
	Period    string
	Vacancies int64
	Postings  int64
}

func LoadCompanyPivot() ([]CompanyPeriodRow, error) {
	var rows []CompanyPeriodRow
	err := DB.Table("company_period_vacancies").
		Select("companies.name as company, company_period_vacancies.period as period, "+
			"sum(company_period_vacancies.vacancies) as vacancies, sum(company_period_vacancies.postings) as postings").
		Joins("join companies on companies.id = company_period_vacancies.company_id").
		Group("companies.name, company_period_vacancies.period").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return rows, nil
}

// TopCompaniesByVacancies returns up to n company names ranked by total
// vacancies across all periods.
func TopCompaniesByVacancies(n int) ([]string, error) {
	var names []string
	err := DB.Table("company_period_vacancies").
		Select("companies.name").
		Joins("join companies on companies.id = company_period_vacancies.company_id").
		Group("companies.name").
		Order("sum(company_period_vacancies.vacancies) desc").
		Limit(n).
		Scan(&names).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return names, nil
}

func ListCompanies() ([]Company, error) {
	var companies []Company
	err := DB.Order("name").Find(&companies).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return companies, nil
}
