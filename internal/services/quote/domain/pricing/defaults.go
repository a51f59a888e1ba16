package pricing

func everyFormat(maxGuests int, value float64) FormatRow {
	return FormatRow{MaxGuests: maxGuests, Buffet: value, Market: value, StationBites: value, CirculatingBites: value}
}

func everyStyle(maxGuests int, value float64) StyleRow {
	return StyleRow{MaxGuests: maxGuests, All: value, MeatNoFish: value, Vegetarian: value, Vegan: value, Pescatarian: value}
}

// DefaultConfig returns the company's current pricing rules.
func DefaultConfig() Config {
	return Config{
		Rates: Rates{
			InputTax:     0.18,
			Overhead:     0.18,
			Profit:       0.20,
			OutputTax:    0.18,
			RoundingStep: 100,
		},
		Costs: UnitCosts{
			OliveOilPerLitre: 38,
			MeatPerKg:        106,
			FishStarterPerKg: 171,
			FishMainPerKg:    85.5,

			MeatPortionKg:        0.3,
			FishStarterPortionKg: 0.06,
			FishMainPortionKg:    0.3,

			KitchenWorker:    600,
			KitchenManager:   1200,
			Waiter:           600,
			Dishwasher:       600,
			LogisticsManager: 1200,
			LogisticsWorker:  900,
			EventManager:     600,
			ClearingStaff:    600,

			KosherCertificateSmall:       700,
			KosherCertificateMediumLarge: 1000,
			KosherSupervisorBase:         500,
			KosherSupervisorFar:          1000,

			Station:     350,
			Fridge:      250,
			Oven:        500,
			Warmer:      500,
			WorkTable:   30,
			GasCanister: 156,

			TruckClose:   800,
			TruckFar:     1200,
			TruckSpecial: 4000,

			FuelPerKm:        2.5,
			StaffTravelPerKm: 1.0,

			DisposablesSmall:  100,
			DisposablesMedium: 200,
			DisposablesLarge:  300,
		},
		Distances: Distances{Close: 200, Far: 500, Special: 1000},
		Thresholds: Thresholds{
			LogisticsWorkerAbove:    100,
			SeniorEventManagerAbove: 150,
			SeniorEventManagerQty:   1.5,
			OvenAbove:               100,
			WarmerAbove:             100,
			GuestsPerClearingStaff:  70,
			DisposablesSmallMax:     100,
			DisposablesMediumMax:    200,
			SmallEventMax:           100,
			MediumEventMax:          200,
		},
		Tables:      defaultTables(),
		ServingWare: defaultServingWare(),
		FormatLimits: map[ServingFormat]FormatLimit{
			ServingFormatBuffet:           {MinGuests: 1, MaxGuests: 150},
			ServingFormatMarket:           {MinGuests: 50, MaxGuests: 400},
			ServingFormatStationBites:     {MinGuests: 50, MaxGuests: 400},
			ServingFormatCirculatingBites: {MinGuests: 1, MaxGuests: 120},
		},
		MaxGuests: 400,
	}
}

func defaultTables() Tables {
	foodCost := StyleTable{
		everyStyle(30, 800),
		everyStyle(40, 1000),
		everyStyle(60, 1200),
		everyStyle(100, 1800),
		everyStyle(140, 2000),
		everyStyle(160, 2400),
		everyStyle(180, 2800),
		everyStyle(200, 3000),
		everyStyle(220, 3400),
		everyStyle(240, 3800),
		everyStyle(260, 4000),
		everyStyle(300, 4200),
		everyStyle(360, 4500),
		everyStyle(380, 4800),
		everyStyle(1000, 5000),
	}
	return Tables{
		KitchenStaff: FormatTable{
			everyFormat(30, 2),
			everyFormat(50, 3),
			everyFormat(59, 4),
			everyFormat(60, 4),
			everyFormat(90, 5),
			everyFormat(120, 6),
			everyFormat(150, 7),
			everyFormat(180, 8),
			everyFormat(190, 9),
			everyFormat(220, 10),
			everyFormat(270, 11),
			everyFormat(290, 12),
			everyFormat(350, 13),
			everyFormat(1000, 14),
		},
		FloorStaff: FormatTable{
			everyFormat(50, 2),
			everyFormat(70, 3),
			everyFormat(120, 4),
			everyFormat(160, 5),
			everyFormat(190, 6),
			everyFormat(220, 7),
			everyFormat(270, 8),
			everyFormat(320, 9),
			everyFormat(350, 10),
			everyFormat(1000, 11),
		},
		StaffVehicles: FormatTable{
			everyFormat(30, 2),
			everyFormat(59, 3),
			everyFormat(90, 4),
			everyFormat(120, 5),
			everyFormat(180, 6),
			everyFormat(190, 6),
			everyFormat(230, 10),
			everyFormat(270, 11),
			everyFormat(350, 12),
			everyFormat(1000, 13),
		},
		// Only station-bite events get end stations.
		EndStations: FormatTable{
			{MaxGuests: 50, StationBites: 2},
			{MaxGuests: 100, StationBites: 3},
			{MaxGuests: 150, StationBites: 4},
			{MaxGuests: 200, StationBites: 5},
			{MaxGuests: 250, StationBites: 6},
			{MaxGuests: 300, StationBites: 7},
			{MaxGuests: 350, StationBites: 8},
			{MaxGuests: 1000, StationBites: 9},
		},

		Vegetables: foodCost,
		DryGoods:   append(StyleTable(nil), foodCost...),
		Bread: StyleTable{
			everyStyle(40, 100),
			everyStyle(80, 150),
			everyStyle(120, 200),
			everyStyle(160, 250),
			everyStyle(200, 300),
			everyStyle(240, 350),
			everyStyle(280, 400),
			everyStyle(300, 450),
			everyStyle(320, 500),
			everyStyle(360, 500),
			everyStyle(1000, 550),
		},
		OliveOilLitres: StyleTable{
			everyStyle(40, 6),
			everyStyle(100, 12),
			everyStyle(160, 14),
			everyStyle(220, 16),
			everyStyle(280, 18),
			everyStyle(340, 20),
			everyStyle(1000, 22),
		},

		Fridges: ThresholdTable{
			{MaxGuests: 247, Value: 2},
			{MaxGuests: 1000, Value: 3},
		},
		GasCanisters: ThresholdTable{
			{MaxGuests: 98, Value: 2},
			{MaxGuests: 248, Value: 5},
			{MaxGuests: 1000, Value: 7},
		},
		WorkTables: ThresholdTable{
			{MaxGuests: 40, Value: 10},
			{MaxGuests: 100, Value: 10},
			{MaxGuests: 247, Value: 15},
			{MaxGuests: 1000, Value: 20},
		},
		CoalCost: ThresholdTable{
			{MaxGuests: 100, Value: 160},
			{MaxGuests: 248, Value: 240},
			{MaxGuests: 1000, Value: 320},
		},
		ServingStations: ThresholdTable{
			{MaxGuests: 30, Value: 2},
			{MaxGuests: 50, Value: 2},
			{MaxGuests: 100, Value: 3},
			{MaxGuests: 150, Value: 4},
			{MaxGuests: 200, Value: 5},
			{MaxGuests: 250, Value: 6},
			{MaxGuests: 300, Value: 7},
			{MaxGuests: 350, Value: 8},
			{MaxGuests: 1000, Value: 9},
		},
	}
}

func defaultServingWare() []ServingWareRule {
	plated := func(m Multiplier) map[ServingFormat]Multiplier {
		return map[ServingFormat]Multiplier{
			ServingFormatBuffet:       m,
			ServingFormatMarket:       m,
			ServingFormatStationBites: m,
		}
	}
	everywhere := func(m Multiplier) map[ServingFormat]Multiplier {
		out := make(map[ServingFormat]Multiplier, len(ServingFormats))
		for _, format := range ServingFormats {
			out[format] = m
		}
		return out
	}
	oneAndAHalfPlusTwo := Multiplier{Num: 3, Den: 2, Offset: 2}
	onePointThree := Multiplier{Num: 13, Den: 10}

	return []ServingWareRule{
		{
			Key: "palm_dessert_plates", Name: "Palm-leaf dessert plate", UnitPrice: 0.5,
			Multipliers: map[ServingFormat]Multiplier{ServingFormatStationBites: {Num: 3, Den: 1}},
		},
		{
			Key: "palm_plates", Name: "Palm-leaf plate", UnitPrice: 0.5,
			Multipliers: map[ServingFormat]Multiplier{ServingFormatCirculatingBites: {Num: 7, Den: 1}},
		},
		{Key: "starter_plates_12", Name: "Rental starter plate 12", UnitPrice: 1.4, Multipliers: plated(oneAndAHalfPlusTwo)},
		{Key: "dessert_plates_12", Name: "Rental dessert plate 12", UnitPrice: 1.4, Multipliers: plated(onePointThree)},
		{Key: "plates_19", Name: "Rental plate 19", UnitPrice: 1.4, Multipliers: plated(onePointThree)},
		{
			Key: "small_forks", Name: "Small fork", UnitPrice: 1.2,
			Multipliers: map[ServingFormat]Multiplier{ServingFormatBuffet: onePointThree},
		},
		{
			Key: "forks", Name: "Fork", UnitPrice: 1.2,
			Multipliers: map[ServingFormat]Multiplier{ServingFormatBuffet: onePointThree},
		},
		{Key: "knives", Name: "Knife", UnitPrice: 1.2, Multipliers: everywhere(Multiplier{Num: 1, Den: 2})},
		{Key: "teaspoons", Name: "Teaspoon", UnitPrice: 1.2, Multipliers: everywhere(Multiplier{Num: 1, Den: 1, Offset: 1})},
		{
			Key: "table_spoons", Name: "Table spoon", UnitPrice: 1.2,
			Table: ThresholdTable{
				{MaxGuests: 30, Value: 10},
				{MaxGuests: 70, Value: 15},
				{MaxGuests: 120, Value: 20},
				{MaxGuests: 200, Value: 25},
				{MaxGuests: 300, Value: 30},
				{MaxGuests: 1000, Value: 35},
			},
		},
		{Key: "hot_cups", Name: "Hot drink cup", UnitPrice: 1.4, Multipliers: everywhere(onePointThree)},
	}
}
