package openweather

type currentResponse struct {
	Weather []conditionDTO `json:"weather"`
	Main    *mainDTO       `json:"main"`
}

type conditionDTO struct {
	Description *string `json:"description"`
}

type mainDTO struct {
	Temp *float64 `json:"temp"`
}

func (r currentResponse) description() (string, bool) {
	if len(r.Weather) == 0 || r.Weather[0].Description == nil {
		return "", false
	}
	return *r.Weather[0].Description, true
}
