package twelvedata

// IntervalDaily is the interval pinned by the daily resource.
const IntervalDaily = "1day"

// Resource descriptors for the supported endpoints.
var (
	TimeSeriesResource = Resource[*TimeSeries]{
		Name: "time_series",
		Path: "/time_series",
		Map:  MapTimeSeries,
	}

	DailyResource = Resource[*Daily]{
		Name:  "daily",
		Path:  "/time_series",
		Fixed: Params{ParamInterval: String(IntervalDaily)},
		Map:   MapDaily,
	}

	QuoteResource = Resource[*Quote]{
		Name: "quote",
		Path: "/quote",
		Map:  MapQuote,
	}

	PriceResource = Resource[*Price]{
		Name: "price",
		Path: "/price",
		Map:  MapPrice,
	}

	EndOfDayResource = Resource[*EndOfDay]{
		Name: "eod",
		Path: "/eod",
		Map:  MapEndOfDay,
	}
)
