package engine

const GridSize = 4

type Category struct {
	Name string
	Grid [GridSize][GridSize]string
}

var Categories = []Category{
	{
		Name: "Fruits",
		Grid: [GridSize][GridSize]string{
			{"Apple", "Banana", "Cherry", "Mango"},
			{"Grape", "Peach", "Lemon", "Kiwi"},
			{"Melon", "Plum", "Pear", "Fig"},
			{"Orange", "Lime", "Papaya", "Lychee"},
		},
	},
	{
		Name: "Animals",
		Grid: [GridSize][GridSize]string{
			{"Tiger", "Elephant", "Penguin", "Octopus"},
			{"Kangaroo", "Owl", "Dolphin", "Wolf"},
			{"Giraffe", "Panda", "Eagle", "Shark"},
			{"Rabbit", "Camel", "Otter", "Fox"},
		},
	},
	{
		Name: "Countries",
		Grid: [GridSize][GridSize]string{
			{"Japan", "Brazil", "Egypt", "Canada"},
			{"France", "India", "Mexico", "Kenya"},
			{"Italy", "Norway", "Chile", "Vietnam"},
			{"Spain", "Turkey", "Greece", "Peru"},
		},
	},
	{
		Name: "Sports",
		Grid: [GridSize][GridSize]string{
			{"Soccer", "Tennis", "Boxing", "Golf"},
			{"Hockey", "Rugby", "Skiing", "Judo"},
			{"Cricket", "Rowing", "Surfing", "Darts"},
			{"Cycling", "Fencing", "Archery", "Curling"},
		},
	},
	{
		Name: "Jobs",
		Grid: [GridSize][GridSize]string{
			{"Doctor", "Pilot", "Chef", "Farmer"},
			{"Teacher", "Plumber", "Lawyer", "Barber"},
			{"Nurse", "Actor", "Banker", "Tailor"},
			{"Dentist", "Painter", "Sailor", "Judge"},
		},
	},
	{
		Name: "Instruments",
		Grid: [GridSize][GridSize]string{
			{"Piano", "Guitar", "Violin", "Drums"},
			{"Flute", "Trumpet", "Cello", "Harp"},
			{"Banjo", "Oboe", "Tuba", "Organ"},
			{"Ukulele", "Clarinet", "Accordion", "Bagpipes"},
		},
	},
	{
		Name: "Breakfast",
		Grid: [GridSize][GridSize]string{
			{"Pancakes", "Cereal", "Omelette", "Toast"},
			{"Waffles", "Porridge", "Bacon", "Muffin"},
			{"Croissant", "Yogurt", "Granola", "Bagel"},
			{"Sausage", "Crepes", "Smoothie", "Scone"},
		},
	},
	{
		Name: "Movies",
		Grid: [GridSize][GridSize]string{
			{"Jaws", "Titanic", "Alien", "Rocky"},
			{"Frozen", "Grease", "Psycho", "Shrek"},
			{"Casablanca", "Inception", "Gladiator", "Up"},
			{"Vertigo", "Amadeus", "Chinatown", "Heat"},
		},
	},
}
