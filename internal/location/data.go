package location

// nigeria maps each state (and the FCT) to its major cities and LGA seats.
var nigeria = map[string][]string{
	"Abia":        {"Aba", "Umuahia", "Ohafia", "Arochukwu", "Bende"},
	"Adamawa":     {"Yola", "Mubi", "Numan", "Jimeta", "Ganye"},
	"Akwa Ibom":   {"Uyo", "Eket", "Ikot Ekpene", "Oron", "Abak"},
	"Anambra":     {"Awka", "Onitsha", "Nnewi", "Ekwulobia", "Ogidi"},
	"Bauchi":      {"Bauchi", "Azare", "Misau", "Jama'are", "Katagum"},
	"Bayelsa":     {"Yenagoa", "Brass", "Ogbia", "Sagbama", "Nembe"},
	"Benue":       {"Makurdi", "Gboko", "Otukpo", "Katsina-Ala", "Vandeikya"},
	"Borno":       {"Maiduguri", "Biu", "Bama", "Dikwa", "Monguno"},
	"Cross River": {"Calabar", "Ikom", "Ogoja", "Obudu", "Ugep"},
	"Delta":       {"Asaba", "Warri", "Sapele", "Ughelli", "Agbor"},
	"Ebonyi":      {"Abakaliki", "Afikpo", "Onueke", "Ezza", "Ishielu"},
	"Edo":         {"Benin City", "Auchi", "Ekpoma", "Uromi", "Igarra"},
	"Ekiti":       {"Ado-Ekiti", "Ikere-Ekiti", "Ijero-Ekiti", "Efon-Alaaye", "Ikole"},
	"Enugu":       {"Enugu", "Nsukka", "Oji River", "Awgu", "Udi"},
	"FCT":         {"Abuja", "Gwagwalada", "Kuje", "Bwari", "Kubwa", "Lugbe"},
	"Gombe":       {"Gombe", "Kaltungo", "Billiri", "Dukku", "Bajoga"},
	"Imo":         {"Owerri", "Orlu", "Okigwe", "Oguta", "Mbaise"},
	"Jigawa":      {"Dutse", "Hadejia", "Kazaure", "Gumel", "Ringim"},
	"Kaduna":      {"Kaduna", "Zaria", "Kafanchan", "Kagoro", "Saminaka"},
	"Kano":        {"Kano", "Wudil", "Gaya", "Rano", "Bichi"},
	"Katsina":     {"Katsina", "Funtua", "Daura", "Malumfashi", "Dutsin-Ma"},
	"Kebbi":       {"Birnin Kebbi", "Argungu", "Yauri", "Zuru", "Jega"},
	"Kogi":        {"Lokoja", "Okene", "Idah", "Kabba", "Ankpa"},
	"Kwara":       {"Ilorin", "Offa", "Omu-Aran", "Jebba", "Lafiagi"},
	"Lagos": {
		"Ikeja", "Lagos Island", "Victoria Island", "Lekki", "Ikoyi", "Surulere",
		"Yaba", "Ikorodu", "Epe", "Badagry", "Alimosho", "Ajah", "Apapa", "Oshodi",
		"Agege", "Mushin", "Festac", "Lagos Mainland",
	},
	"Nasarawa": {"Lafia", "Keffi", "Akwanga", "Nasarawa", "Karu"},
	"Niger":    {"Minna", "Bida", "Suleja", "Kontagora", "New Bussa"},
	"Ogun":     {"Abeokuta", "Ijebu-Ode", "Sagamu", "Ota", "Ilaro", "Ifo"},
	"Ondo":     {"Akure", "Ondo", "Owo", "Ikare", "Okitipupa"},
	"Osun":     {"Osogbo", "Ile-Ife", "Ilesa", "Ede", "Iwo"},
	"Oyo":      {"Ibadan", "Ogbomosho", "Oyo", "Iseyin", "Saki"},
	"Plateau":  {"Jos", "Bukuru", "Pankshin", "Shendam", "Langtang"},
	"Rivers":   {"Port Harcourt", "Obio-Akpor", "Bonny", "Omoku", "Eleme"},
	"Sokoto":   {"Sokoto", "Tambuwal", "Gwadabawa", "Illela", "Wurno"},
	"Taraba":   {"Jalingo", "Wukari", "Bali", "Takum", "Gembu"},
	"Yobe":     {"Damaturu", "Potiskum", "Gashua", "Nguru", "Geidam"},
	"Zamfara":  {"Gusau", "Kaura Namoda", "Talata Mafara", "Anka", "Tsafe"},
}
