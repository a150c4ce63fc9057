package main

import (
	"math/rand/v2"
)

// Text samples for typing races, keyed by category. Unknown categories fall
// back to quotes.
var textSamples = map[string][]string{
	"quotes": {
		"The greatest glory in living lies not in never falling, but in rising every time we fall. The way to get started is to quit talking and begin doing.",
		"Your time is limited, so don't waste it living someone else's life. Don't be trapped by dogma – which is living with the results of other people's thinking.",
		"If life were predictable it would cease to be life, and be without flavor. The purpose of our lives is to be happy and to help others find their happiness.",
		"If you look at what you have in life, you'll always have more. If you look at what you don't have in life, you'll never have enough. Be thankful for what you have.",
		"Life is what happens when you're busy making other plans. Sometimes the questions are complicated and the answers are simple.",
		"Success is not final, failure is not fatal: It is the courage to continue that counts. The real test is not whether you avoid failure, but whether you let it harden or shame you into inaction.",
		"The future belongs to those who believe in the beauty of their dreams. You are never too old to set another goal or to dream a new dream.",
		"In the end, we will remember not the words of our enemies, but the silence of our friends. Darkness cannot drive out darkness; only light can do that.",
		"Twenty years from now you will be more disappointed by the things you didn't do than by the ones you did do. So throw off the bowlines, sail away from safe harbor, catch the trade winds in your sails.",
		"The only impossible journey is the one you never begin. Remember that not getting what you want is sometimes a wonderful stroke of luck.",
	},
	"programming": {
		"A programmer is a person who fixed a problem that you don't know you have, in a way you don't understand. Good code is like a good joke: it needs no explanation.",
		"Programming is the art of telling another human being what one wants the computer to do. Always code as if the person who will maintain your code is a violent psychopath who knows where you live.",
		"Software and cathedrals are much the same; first we build them, then we pray. Any fool can write code that a computer can understand. Good programmers write code that humans can understand.",
		"The best error message is the one that never shows up. The most damaging phrase in the language is 'We've always done it this way'. Remember that there is no code faster than no code.",
		"Programming isn't about what you know; it's about what you can figure out. Debugging is twice as hard as writing the code in the first place. Therefore, if you write the code as cleverly as possible, you are, by definition, not smart enough to debug it.",
		"The most important property of a program is whether it accomplishes the intention of its user. Simplicity is the soul of efficiency. If the implementation is hard to explain, it's a bad idea.",
		"A language that doesn't affect the way you think about programming is not worth knowing. Perfection is achieved not when there is nothing more to add, but when there is nothing left to take away.",
		"First, solve the problem. Then, write the code. The function of good software is to make the complex appear to be simple. The best way to predict the future is to implement it.",
		"There are two ways to write error-free programs; only the third one works. The value of a prototype is in the education it gives you, not in the code itself.",
		"Code is like humor. When you have to explain it, it's bad. Programming is not about typing, it's about thinking. Make it work, make it right, make it fast - in that order.",
	},
	"random": {
		"apple banana cherry dolphin elephant forest giraffe happiness island journey knowledge laughter mountain notebook octopus pineapple question rainbow strawberry television umbrella volcano waterfall xylophone yellow zebra",
		"computer keyboard mouse monitor printer scanner headphones microphone speaker webcam router modem battery charger cable adapter software hardware internet website email password username login logout",
		"pizza burger sandwich pasta salad soup noodles rice chicken beef pork fish vegetables fruits dessert cake cookies ice cream chocolate coffee tea juice water soda milk",
		"football basketball baseball soccer tennis golf swimming running cycling hiking skiing snowboarding surfing volleyball boxing wrestling martial arts gymnastics ballet dancing singing acting painting drawing",
		"sun moon stars planet galaxy universe earth sky cloud rain snow wind thunder lightning rainbow mountain valley river lake ocean beach desert forest jungle meadow",
		"hospital doctor nurse patient medicine surgery health illness disease treatment recovery therapy emergency ambulance pharmacy vaccine symptom diagnosis clinic appointment prescription specialist therapy",
		"school teacher student classroom education learning knowledge homework assignment exam grade university college degree diploma certification library study research thesis lecture tutorial",
		"car truck bus train airplane helicopter bicycle motorcycle boat ship vehicle engine wheel tire road highway street intersection traffic light signal parking garage fuel",
		"morning afternoon evening night today tomorrow yesterday hour minute second day week month year decade century millennium schedule calendar appointment meeting deadline alarm clock",
		"happy sad angry frustrated excited nervous anxious calm peaceful stressed relaxed bored interested surprised confused shocked curious thoughtful determined motivated inspired grateful",
	},
}

func validCategory(category string) bool {
	if category == "custom" {
		return true
	}
	_, ok := textSamples[category]
	return ok
}

// randomText returns a random sample for the category, falling back to
// quotes for unknown categories.
func randomText(category string) string {
	texts, ok := textSamples[category]
	if !ok {
		texts = textSamples["quotes"]
	}
	return texts[rand.IntN(len(texts))]
}
