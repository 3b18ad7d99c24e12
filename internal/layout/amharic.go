package layout

func char(base string, family ...string) Key {
	return Key{Kind: KindChar, Label: base, Value: base, Family: family}
}

// Amharic returns the built-in Amharic layout: the base consonants with
// their vowel orders (and labialized forms where they exist), followed by
// editing keys and Ethiopic punctuation.
//
// A fresh copy is returned on every call.
func Amharic() *Layout {
	return &Layout{
		Name: "amharic",
		Rows: []Row{
			{
				char("ሀ", "ሁ", "ሂ", "ሃ", "ሄ", "ህ", "ሆ"),
				char("ለ", "ሉ", "ሊ", "ላ", "ሌ", "ል", "ሎ", "ሏ"),
				char("ሐ", "ሑ", "ሒ", "ሓ", "ሔ", "ሕ", "ሖ", "ሗ"),
				char("መ", "ሙ", "ሚ", "ማ", "ሜ", "ም", "ሞ", "ሟ"),
				char("ሠ", "ሡ", "ሢ", "ሣ", "ሤ", "ሥ", "ሦ", "ሧ"),
				char("ረ", "ሩ", "ሪ", "ራ", "ሬ", "ር", "ሮ", "ሯ"),
				char("ሰ", "ሱ", "ሲ", "ሳ", "ሴ", "ስ", "ሶ", "ሷ"),
				char("ሸ", "ሹ", "ሺ", "ሻ", "ሼ", "ሽ", "ሾ", "ሿ"),
				char("ቀ", "ቁ", "ቂ", "ቃ", "ቄ", "ቅ", "ቆ", "ቈ", "ቊ", "ቋ", "ቌ", "ቍ"),
				char("በ", "ቡ", "ቢ", "ባ", "ቤ", "ብ", "ቦ", "ቧ"),
			},
			{
				char("ቨ", "ቩ", "ቪ", "ቫ", "ቬ", "ቭ", "ቮ", "ቯ"),
				char("ተ", "ቱ", "ቲ", "ታ", "ቴ", "ት", "ቶ", "ቷ"),
				char("ቸ", "ቹ", "ቺ", "ቻ", "ቼ", "ች", "ቾ", "ቿ"),
				char("ኀ", "ኁ", "ኂ", "ኃ", "ኄ", "ኅ", "ኆ", "ኈ", "ኊ", "ኋ", "ኌ", "ኍ"),
				char("ነ", "ኑ", "ኒ", "ና", "ኔ", "ን", "ኖ", "ኗ"),
				char("ኘ", "ኙ", "ኚ", "ኛ", "ኜ", "ኝ", "ኞ", "ኟ"),
				char("አ", "ኡ", "ኢ", "ኣ", "ኤ", "እ", "ኦ", "ኧ"),
				char("ከ", "ኩ", "ኪ", "ካ", "ኬ", "ክ", "ኮ", "ኰ", "ኲ", "ኳ", "ኴ", "ኵ"),
				char("ኸ", "ኹ", "ኺ", "ኻ", "ኼ", "ኽ", "ኾ", "ዀ", "ዂ", "ዃ", "ዄ", "ዅ"),
				char("ወ", "ዉ", "ዊ", "ዋ", "ዌ", "ው", "ዎ"),
			},
			{
				char("ዐ", "ዑ", "ዒ", "ዓ", "ዔ", "ዕ", "ዖ"),
				char("ዘ", "ዙ", "ዚ", "ዛ", "ዜ", "ዝ", "ዞ", "ዟ"),
				char("ዠ", "ዡ", "ዢ", "ዣ", "ዤ", "ዥ", "ዦ", "ዧ"),
				char("የ", "ዩ", "ዪ", "ያ", "ዬ", "ይ", "ዮ"),
				char("ደ", "ዱ", "ዲ", "ዳ", "ዴ", "ድ", "ዶ", "ዷ"),
				char("ጀ", "ጁ", "ጂ", "ጃ", "ጄ", "ጅ", "ጆ", "ጇ"),
				char("ገ", "ጉ", "ጊ", "ጋ", "ጌ", "ግ", "ጎ"),
				char("ጠ", "ጡ", "ጢ", "ጣ", "ጤ", "ጥ", "ጦ", "ጧ"),
			},
			{
				char("ጨ", "ጩ", "ጪ", "ጫ", "ጬ", "ጭ", "ጮ", "ጯ"),
				char("ጰ", "ጱ", "ጲ", "ጳ", "ጴ", "ጵ", "ጶ", "ጷ"),
				char("ጸ", "ጹ", "ጺ", "ጻ", "ጼ", "ጽ", "ጾ", "ጿ"),
				char("ፀ", "ፁ", "ፂ", "ፃ", "ፄ", "ፅ", "ፆ", "ፇ"),
				char("ፈ", "ፉ", "ፊ", "ፋ", "ፌ", "ፍ", "ፎ", "ፏ"),
				char("ፐ", "ፑ", "ፒ", "ፓ", "ፔ", "ፕ", "ፖ", "ፗ"),
				{Kind: KindBackspace, Label: "⌫"},
			},
			{
				{Kind: KindPoint, Label: "።", Value: "።"},
				{Kind: KindPoint, Label: "፣", Value: "፣"},
				{Kind: KindSpace, Label: "    "},
				{Kind: KindEnter, Label: "⏎"},
			},
		},
	}
}
