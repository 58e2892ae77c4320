package chart

// Supported label languages.
const (
	LangEN = "en"
	LangRU = "ru"
)

// labels holds the per-language text of one chart.
type labels struct {
	title    string
	subtitle string // may contain one %d for the configured limit
	xLabel   string
	yLabel   string
}

// UI holds page-level strings for the dashboard.
type UI struct {
	Heading      string `json:"heading"`
	SidebarTitle string `json:"sidebar_title"`
	ChartLabel   string `json:"chart_label"`
	RegionsLabel string `json:"regions_label"`
	Apply        string `json:"apply"`
	Download     string `json:"download"`
	Empty        string `json:"empty"`
	Group        string `json:"group"`
	Mean         string `json:"mean"`
	Median       string `json:"median"`
	Mode         string `json:"mode"`
}

var uiText = map[string]UI{
	LangEN: {
		Heading:      "Resume Data Dashboard",
		SidebarTitle: "Select a Chart",
		ChartLabel:   "Chart:",
		RegionsLabel: "Select Regions",
		Apply:        "Apply",
		Download:     "Download .xlsx",
		Empty:        "No data for the current selection",
		Group:        "Region",
		Mean:         "Mean",
		Median:       "Median",
		Mode:         "Mode",
	},
	LangRU: {
		Heading:      "Панель данных резюме",
		SidebarTitle: "Выберите график",
		ChartLabel:   "График:",
		RegionsLabel: "Выберите области",
		Apply:        "Применить",
		Download:     "Скачать .xlsx",
		Empty:        "Нет данных для выбранных областей",
		Group:        "Область",
		Mean:         "Среднее",
		Median:       "Медиана",
		Mode:         "Мода",
	},
}

var chartText = map[string]map[ID]labels{
	LangEN: {
		TopRegions: {
			title:    "Top 20 Regions by Number of Resumes",
			subtitle: "Top %d Regions by Resume Count",
			xLabel:   "Number of Resumes",
			yLabel:   "Region",
		},
		TopProfessions: {
			title:    "Most Popular Professions by Region",
			subtitle: "Most Common Professions in Selected Regions",
			xLabel:   "Count",
			yLabel:   "Job Category",
		},
		SalaryVsExperience: {
			title:    "Salary vs. Work Experience",
			subtitle: "Salary vs. Work Experience",
			xLabel:   "Work Experience (years)",
			yLabel:   "Salary",
		},
		Education: {
			title:    "Education Level Distribution",
			subtitle: "Education Level Distribution",
			xLabel:   "Count",
			yLabel:   "Education Level",
		},
		SalaryStats: {
			title:    "Mean, Median, Mode Salaries by Region",
			subtitle: "Salary Statistics by Region (Top %d)",
		},
		SalaryByConditions: {
			title:    "Salary Distribution by Work Conditions",
			subtitle: "Salary Distribution by Work Conditions",
			xLabel:   "Working Conditions",
			yLabel:   "Salary",
		},
		SalaryBySex: {
			title:    "Salary Distribution by Sex",
			subtitle: "Salary Distribution by Sex",
			xLabel:   "Sex",
			yLabel:   "Salary",
		},
	},
	LangRU: {
		TopRegions: {
			title:    "Топ-20 областей по количеству резюме",
			subtitle: "Топ-%d областей по количеству резюме",
			xLabel:   "Количество резюме",
			yLabel:   "Область",
		},
		TopProfessions: {
			title:    "Самые популярные профессии по областям",
			subtitle: "Самые частые профессии в выбранных областях",
			xLabel:   "Количество",
			yLabel:   "Категория",
		},
		SalaryVsExperience: {
			title:    "Зарплата и опыт работы",
			subtitle: "Зарплата и опыт работы",
			xLabel:   "Опыт работы (лет)",
			yLabel:   "Зарплата",
		},
		Education: {
			title:    "Распределение по уровню образования",
			subtitle: "Распределение по уровню образования",
			xLabel:   "Количество",
			yLabel:   "Образование",
		},
		SalaryStats: {
			title:    "Средняя, медианная и модальная зарплата по областям",
			subtitle: "Статистика зарплат по областям (топ-%d)",
		},
		SalaryByConditions: {
			title:    "Распределение зарплат по условиям работы",
			subtitle: "Распределение зарплат по условиям работы",
			xLabel:   "Условия работы",
			yLabel:   "Зарплата",
		},
		SalaryBySex: {
			title:    "Распределение зарплат по полу",
			subtitle: "Распределение зарплат по полу",
			xLabel:   "Пол",
			yLabel:   "Зарплата",
		},
	},
}

// Text returns the page strings for lang, falling back to English.
func Text(lang string) UI {
	if ui, ok := uiText[lang]; ok {
		return ui
	}
	return uiText[LangEN]
}
