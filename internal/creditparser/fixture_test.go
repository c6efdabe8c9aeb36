package creditparser_test

const experianReport = `EXPERIAN CREDIT REPORT
Report Date: 03/01/2024

PERSONAL INFORMATION
Name: JOHN A SMITH JR
SSN: XXX-XX-1234
Date of Birth: 01/15/1980
Address: 123 MAIN ST
ANYTOWN, CA 90210
Previous Address: 456 OAK AVE, OLDTOWN, NY 10001
Phone: (555) 123-4567
Employer: ACME CORPORATION

ACCOUNT INFORMATION

ABC BANK
Account Number: XXXX5678
Account Type: Revolving
Status: Open
Date Opened: 01/15/2015
Balance: $5,000
Credit Limit: $10,000
Monthly Payment: $150
Payment History: JAN '24: OK FEB '24: 30

MIDLAND FUNDING LLC
Original Creditor: MEDICAL CENTER
Account Number: XXXX9999
Account Type: Open Account
Status: Collection
Date Opened: 06/01/2020
Balance: $1,250
Past Due: $1,250

CREDIT INQUIRIES
Inquiry Date / Company
CREDIT KARMA 01/01/2023
CHASE BANK 02/15/2023

CREDIT SCORE
FICO Score 8: 720
VantageScore 3.0: 680
Key Factors:
- Proportion of balances to credit limits is too high
- Length of credit history is short

POTENTIALLY NEGATIVE ITEMS

MIDLAND FUNDING LLC
Status: Collection
Balance: $1,250

PORTFOLIO RECOVERY ASSOCIATES
Original Creditor: SYNCHRONY BANK
Status: Collection
Balance: $850
`
