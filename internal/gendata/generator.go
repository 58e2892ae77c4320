package gendata

import (
	"math"
	"math/rand/v2"

	"github.com/okian/resumedash/internal/domain/model"
)

// Share of rows with a blank region or salary.
const (
	missingRegionRate = 0.01
	missingSalaryRate = 0.02
)

// Salary model: base by category, growth per year of experience, noise.
const (
	salaryPerYear  = 2500.0
	salaryNoise    = 0.18
	salaryRounding = 1000.0
	maxExperience  = 40.0
)

type weighted struct {
	value  string
	weight float64
}

var regions = []weighted{
	{"Москва", 30}, {"Санкт-Петербург", 14}, {"Московская область", 9},
	{"Свердловская область", 5}, {"Новосибирская область", 4}, {"Краснодарский край", 4},
	{"Республика Татарстан", 4}, {"Нижегородская область", 3}, {"Ростовская область", 3},
	{"Самарская область", 3}, {"Челябинская область", 3}, {"Башкортостан", 2.5},
	{"Красноярский край", 2}, {"Пермский край", 2}, {"Воронежская область", 2},
	{"Волгоградская область", 1.5}, {"Омская область", 1.5}, {"Томская область", 1.2},
	{"Иркутская область", 1.2}, {"Тюменская область", 1.2}, {"Калининградская область", 1},
	{"Приморский край", 1}, {"Хабаровский край", 0.8}, {"Ярославская область", 0.8},
}

var categories = []weighted{
	{"Sales", 16}, {"Information technology", 14}, {"Transport, logistics", 12},
	{"Accounting, finance", 9}, {"Administrative staff", 8}, {"Production", 8},
	{"Construction, real estate", 7}, {"Marketing, advertising", 6}, {"Healthcare", 5},
	{"Education, science", 5}, {"Tourism, hotels, restaurants", 4}, {"Security", 3},
	{"Human resources", 2}, {"Law", 1},
}

var baseSalary = map[string]float64{
	"Sales":                        45000,
	"Information technology":       90000,
	"Transport, logistics":         55000,
	"Accounting, finance":          60000,
	"Administrative staff":         40000,
	"Production":                   50000,
	"Construction, real estate":    60000,
	"Marketing, advertising":       65000,
	"Healthcare":                   50000,
	"Education, science":           38000,
	"Tourism, hotels, restaurants": 35000,
	"Security":                     35000,
	"Human resources":              55000,
	"Law":                          70000,
}

var educations = []weighted{
	{"Higher", 55}, {"Secondary special", 25}, {"Secondary", 10},
	{"Incomplete higher", 7}, {"Academic degree", 3},
}

var conditions = []weighted{
	{"Full day", 60}, {"Shift schedule", 15}, {"Flexible schedule", 10},
	{"Remote work", 10}, {"Rotation", 5},
}

var sexes = []weighted{{"Male", 52}, {"Female", 48}}

// Generator produces deterministic synthetic resumes.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate returns n resumes. Salary and Experience are NaN when missing;
// Region is empty when missing.
func (g *Generator) Generate(n int) []model.ResumeRecord {
	out := make([]model.ResumeRecord, n)
	for i := range out {
		out[i] = g.record()
	}
	return out
}

func (g *Generator) record() model.ResumeRecord {
	category := g.pick(categories)
	experience := math.Round(g.experience()*10) / 10

	r := model.ResumeRecord{
		Region:     g.pick(regions),
		Category:   category,
		Experience: experience,
		Education:  g.pick(educations),
		Conditions: g.pick(conditions),
		Sex:        g.pick(sexes),
	}
	r.Salary = g.salary(category, experience)

	if g.rng.Float64() < missingRegionRate {
		r.Region = ""
	}
	if g.rng.Float64() < missingSalaryRate {
		r.Salary = math.NaN()
	}
	return r
}

// experience is skewed towards junior profiles.
func (g *Generator) experience() float64 {
	return math.Min(maxExperience, g.rng.ExpFloat64()*7)
}

func (g *Generator) salary(category string, experience float64) float64 {
	base := baseSalary[category] + salaryPerYear*math.Min(experience, 20)
	noisy := base * (1 + g.rng.NormFloat64()*salaryNoise)
	if noisy < salaryRounding*10 {
		noisy = salaryRounding * 10
	}
	return math.Round(noisy/salaryRounding) * salaryRounding
}

func (g *Generator) pick(items []weighted) string {
	total := 0.0
	for _, it := range items {
		total += it.weight
	}
	x := g.rng.Float64() * total
	for _, it := range items {
		if x < it.weight {
			return it.value
		}
		x -= it.weight
	}
	return items[len(items)-1].value
}
